package model

// Snapshot is a point-in-time view of a tracked item.
//
// Values are kept as the strings the ingestion layer stored them with, so that
// "1.10" renders as "1.10" and not as a re-formatted float. Empty means absent.
type Snapshot struct {
	CompanyName string `json:"companyName,omitempty"`
	Ticker      string `json:"ticker,omitempty"`

	IndicatorName string `json:"indicatorName,omitempty"`
	BaseName      string `json:"baseName,omitempty"`
	Country       string `json:"country,omitempty"`

	ReleaseDate   string `json:"releaseDate,omitempty"`
	ReleaseTiming string `json:"releaseTiming,omitempty"`

	ActualEPS       string `json:"actualEps,omitempty"`
	ForecastEPS     string `json:"forecastEps,omitempty"`
	ActualRevenue   string `json:"actualRevenue,omitempty"`
	ForecastRevenue string `json:"forecastRevenue,omitempty"`

	DividendAmount   string `json:"dividendAmount,omitempty"`
	PreviousDividend string `json:"previousDividend,omitempty"`
	DividendYield    string `json:"dividendYield,omitempty"`
	ExDividendDate   string `json:"exDividendDate,omitempty"`
	PaymentDate      string `json:"paymentDate,omitempty"`

	Actual   string `json:"actual,omitempty"`
	Forecast string `json:"forecast,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// ContentChange describes a detected change of a tracked item.
type ContentChange struct {
	ContentType      ContentType      `json:"contentType" validate:"required,oneof=EARNINGS DIVIDEND ECONOMIC_INDICATOR"`
	ContentID        int64            `json:"contentId" validate:"required,gt=0"`
	NotificationType NotificationType `json:"notificationType" validate:"required,oneof=DATA_CHANGED RELEASE_DATE PAYMENT_DATE"`
	CompanyID        int64            `json:"companyId,omitempty"`
	Before           *Snapshot        `json:"before,omitempty"`
	Current          *Snapshot        `json:"current" validate:"required"`
}
