package model

// SeriesEntry: одна строка справочника тиров (одна линейка/поколение БП).
// Поля для сопоставления: MatchSeries, Tier, Wattage, Efficiency; остальное
// просто возвращается клиенту как есть.
type SeriesEntry struct {
	MatchSeries string `json:"matchSeries" validate:"required"`
	Tier        string `json:"tier" validate:"required,tier"`
	Wattage     string `json:"wattage"`              // "550/650W" | "430-700W" | "All PSUs" | ""
	Efficiency  string `json:"efficiency,omitempty"` // "80+ Gold", "80+ White/Standard", ...

	Brand      string `json:"brand,omitempty"`
	Series     string `json:"series,omitempty"`
	Year       string `json:"year,omitempty"`
	FormFactor string `json:"form_factor,omitempty"`
	ATXVersion string `json:"atx_version,omitempty"`
	Modular    string `json:"modular,omitempty"`
	Topology   string `json:"topology,omitempty"`
	ODM        string `json:"odm,omitempty"`
	Platform   string `json:"platform,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Strategy: каким способом серия нашлась в имени.
type Strategy string

const (
	StrategyStrict    Strategy = "strict"
	StrategyTokenized Strategy = "tokenized"
	StrategyFallback  Strategy = "fallback"
)

// Outcome: итог одного разрешения имени.
type Outcome string

const (
	OutcomeMatched      Outcome = "matched"
	OutcomeUnknownBrand Outcome = "unknown_brand"
	OutcomeNoSeries     Outcome = "no_series"
)

// Match: результат Resolve. При Outcome != matched заполнены только Outcome,
// Brand (если бренд распознан) и CleanName.
type Match struct {
	Entry     SeriesEntry `json:"entry"`
	Brand     string      `json:"brand"`
	Strategy  Strategy    `json:"strategy,omitempty"`
	CleanName string      `json:"cleanName"`
	Outcome   Outcome     `json:"outcome"`
}

// Rejection: почему кандидат отброшен после того, как стратегия сработала.
type Rejection string

const (
	RejectWattage    Rejection = "wattage"
	RejectEfficiency Rejection = "efficiency"
	RejectModelCode  Rejection = "model_code"
)

// Attempt: один кандидат в трассировке explain.
type Attempt struct {
	MatchSeries string    `json:"matchSeries"`
	Tier        string    `json:"tier"`
	Strategy    Strategy  `json:"strategy,omitempty"` // пусто: ни одна стратегия не сработала
	Rejected    Rejection `json:"rejected,omitempty"`
}

// Suggestion: близкая серия, когда ничего не подошло.
type Suggestion struct {
	MatchSeries string  `json:"matchSeries"`
	Tier        string  `json:"tier"`
	Score       float32 `json:"score"`
}

// Trace: пошаговый разбор одного Resolve (для отладки правил и справочника).
type Trace struct {
	Input       string       `json:"input"`
	Wattage     int          `json:"wattage"`
	Folded      string       `json:"folded"`
	Rewritten   string       `json:"rewritten"`
	RulesFired  []string     `json:"rulesFired"`
	Normalized  string       `json:"normalized"`
	Brand       string       `json:"brand"`
	CleanName   string       `json:"cleanName"`
	Attempts    []Attempt    `json:"attempts"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	Match       *Match       `json:"match,omitempty"`
	Outcome     Outcome      `json:"outcome"`
}

// ProductRow: строка пакетного файла (имя + мощность).
type ProductRow struct {
	Line    int    // номер строки в исходном файле (1-based)
	Name    string // исходное наименование
	Wattage int    // 0 = неизвестно
}

// BatchRow: строка ответа пакетного разрешения.
type BatchRow struct {
	Line       int    `json:"line" csv:"line"`
	Name       string `json:"name" csv:"name"`
	Wattage    int    `json:"wattage" csv:"wattage"`
	Tier       string `json:"tier" csv:"tier"`
	Brand      string `json:"brand" csv:"brand"`
	Series     string `json:"series" csv:"series"`
	Efficiency string `json:"efficiency" csv:"efficiency"`
	Strategy   string `json:"strategy" csv:"strategy"`
	Outcome    string `json:"outcome" csv:"outcome"`
}

type BatchMapping struct {
	NameKey    string `json:"nameColumn"`              // имя колонки с наименованием
	WattageKey string `json:"wattageColumn,omitempty"` // имя колонки с мощностью (опционально)
	HeaderRow  int    `json:"headerRow"`               // строка заголовков (1-based)
}

type BatchResult struct {
	Rows    []BatchRow     `json:"rows"`
	Matched int            `json:"matched"`
	Total   int            `json:"total"`
	Mapping BatchMapping   `json:"mapping"`
	Table   string         `json:"tableVersion"`
	Stats   map[string]int `json:"stats"` // outcome -> count
}
