package service

import "regexp"

// RulesVersion меняется при каждом добавлении/изменении правила.
const RulesVersion = "1.4"

// DefaultRules: накопленные знания о том, как магазины пишут названия.
// Порядок важен: правило видит результат всех предыдущих.
// Новые правила только добавлять, и каждое — со своим тестом.
var DefaultRules = []Rule{
	{
		// "850P Gaming" у 1st Player / Gamemax = платиновая линейка
		Name:    "p-gaming-platinum",
		Pattern: regexp.MustCompile(`(?i)(\d+)P\s+Gaming\b`),
		Replace: "${1} Platinum",
	},
	{
		Name:    "cooler-master-vanguard-sfx",
		Pattern: regexp.MustCompile(`(?i)\bV(\d+) SFX`),
		Replace: `V Series "Vanguard" SFX ${1}`,
	},
	{
		Name:    "corsair-rmx",
		Pattern: regexp.MustCompile(`(?i)\bRM(\d+)x`),
		Replace: "RMx 2021 ${1}",
	},
	{
		// "750G " → "750 Gold "
		Name:    "g-suffix-gold",
		Pattern: regexp.MustCompile(`(?i)(\d+)G(\s|$)`),
		Replace: "${1} Gold${2}",
		Unless:  regexp.MustCompile(`(?i)\bgold\b`),
	},
	{
		Name:          "atx-3-0",
		Pattern:       regexp.MustCompile(`(?i)\bATX ?3\b`),
		Replace:       "ATX 3.0",
		NotFollowedBy: regexp.MustCompile(`^\.\d`),
	},
	{
		Name:          "century-ii",
		Pattern:       regexp.MustCompile(`(?i)\bCentury II\b`),
		Replace:       "Century II Gold ATX 3.1",
		NotFollowedBy: regexp.MustCompile(`(?i)^\s+Gold`),
	},
	{
		Name:    "nzxt-c-2019",
		Pattern: regexp.MustCompile(`(?i)\bNZXT C(\d+)(?:\s+Gold)?\s*\(?2019\)?`),
		Replace: "NZXT C Series Gold V1 ${1}",
	},
	{
		Name:    "nzxt-c-2022",
		Pattern: regexp.MustCompile(`(?i)\bNZXT C(\d+)(?:\s+Gold)?\s*\(?2022\)?`),
		Replace: "NZXT C Series Gold V2 ${1}",
	},
	{
		Name:    "nzxt-c-2024",
		Pattern: regexp.MustCompile(`(?i)\bNZXT C(\d+)(?:\s+Gold)?\s*\(?2024\)?`),
		Replace: "NZXT C Series Gold ATX 3.1 ${1}",
	},
	{
		Name:    "nzxt-c-bare-2019",
		Pattern: regexp.MustCompile(`(?i)\bNZXT C(?:\s+Gold)?\s*\(?2019\)?`),
		Replace: "NZXT C Series Gold V1",
	},
	{
		// C-серия без года; бронзовые C-модели сюда не попадают
		Name:    "nzxt-c-gold",
		Pattern: regexp.MustCompile(`(?i)\bNZXT C(\d+)\b(?:\s+Gold\b)?`),
		Replace: "NZXT C Series Gold ${1}",
		Unless:  regexp.MustCompile(`(?i)\bbronze\b`),
	},
}
