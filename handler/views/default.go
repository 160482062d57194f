package views

// List limited list
type List struct {
	Items interface{} `json:"items"`
	Limit int         `json:"limit"`
}

// Preview planned liquidations, nothing submitted
type Preview struct {
	Liquidations interface{} `json:"liquidations"`
	Count        int         `json:"count"`
}
