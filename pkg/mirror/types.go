package mirror

// ContractCallRequest is the body of POST /api/v1/contracts/call. With
// Estimate set the mirror node returns the gas the call would consume
// instead of executing it.
type ContractCallRequest struct {
	To       string `json:"to"`
	From     string `json:"from,omitempty"`
	Data     string `json:"data"`
	Estimate bool   `json:"estimate"`
	Block    string `json:"block,omitempty"`
	Gas      int64  `json:"gas,omitempty"`
}

type contractCallResponse struct {
	Result string `json:"result"`
}

type ContractInfo struct {
	ContractID string `json:"contract_id"`
	EvmAddress string `json:"evm_address"`
	Memo       string `json:"memo"`
	Deleted    bool   `json:"deleted"`
}

type Transaction struct {
	TransactionID      string `json:"transaction_id"`
	Name               string `json:"name"`
	Result             string `json:"result"`
	ConsensusTimestamp string `json:"consensus_timestamp"`
	ChargedTxFee       int64  `json:"charged_tx_fee"`
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type NetworkFee struct {
	Gas             int64  `json:"gas"`
	TransactionType string `json:"transaction_type"`
}

type NetworkFees struct {
	Fees      []NetworkFee `json:"fees"`
	Timestamp string       `json:"timestamp"`
}

type mirrorErrorResponse struct {
	Status struct {
		Messages []mirrorErrorMessage `json:"messages"`
	} `json:"_status"`
}

type mirrorErrorMessage struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Data    string `json:"data"`
}
