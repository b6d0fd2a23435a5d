package hyperliquid

// RawFill is a single trade execution as returned by the userFills info
// request. Numeric fields arrive as strings and are coerced downstream.
type RawFill struct {
	Time          int64  `json:"time"`
	Coin          string `json:"coin"`
	Dir           string `json:"dir"`
	Px            string `json:"px"`
	Sz            string `json:"sz"`
	ClosedPnL     string `json:"closedPnl"`
	Fee           string `json:"fee"`
	StartPosition string `json:"startPosition"`
	Hash          string `json:"hash"`
	Oid           int64  `json:"oid"`
	Crossed       bool   `json:"crossed"`
}

// RawFunding is a single funding settlement as returned by the userFunding
// info request. USDC is signed: positive means the account received funding.
type RawFunding struct {
	Time int64  `json:"time"`
	Coin string `json:"coin"`
	USDC string `json:"usdc"`
}

// infoRequest is the body posted to the info endpoint. The Type field selects
// the query; StartTime is only meaningful for userFunding.
type infoRequest struct {
	Type      string `json:"type"`
	User      string `json:"user"`
	StartTime int64  `json:"startTime,omitempty"`
}
