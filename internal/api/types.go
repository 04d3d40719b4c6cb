// Package api defines the request and response shapes shared by the HTTP handlers.
package api

// ErrorResponse is the body returned for every failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CandleResponse is one daily observation.
type CandleResponse struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// CompanyResponse is the company header shown above the charts.
type CompanyResponse struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Exchange    string `json:"exchange,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Website     string `json:"website,omitempty"`
}

// SeriesResponse is one plotted series. Nil values are gaps.
type SeriesResponse struct {
	Name   string     `json:"name"`
	Mode   string     `json:"mode"`
	Values []*float64 `json:"values"`
}

// FigureResponse is a chart in data form.
type FigureResponse struct {
	Title  string           `json:"title"`
	Kind   string           `json:"kind"`
	X      []string         `json:"x"`
	Series []SeriesResponse `json:"series"`
}

// ForecastQuery holds the query parameters of the forecast endpoints.
type ForecastQuery struct {
	Days int `form:"days" binding:"required,min=1,max=365"`
}
