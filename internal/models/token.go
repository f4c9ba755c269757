package models

import "encoding/json"

// BalanceResult is the reply shape of the BalanceOf query. The contract
// serializes amounts as JSON numbers or numeric strings depending on
// deployment, so json.Number covers both.
type BalanceResult struct {
	Balance json.Number `json:"balance"`
}

// TotalSupplyResult is the reply shape of the TotalSupply query.
type TotalSupplyResult struct {
	TotalSupply json.Number `json:"totalSupply"`
}
