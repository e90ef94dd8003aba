package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLAccounts          = APIPrefix + APIVersionV1 + "/accounts/{id}"
	URLTransactions      = APIPrefix + APIVersionV1 + "/transactions"
	URLTransactionByHash = APIPrefix + APIVersionV1 + "/transactions/{id}"
	URLContract          = APIPrefix + APIVersionV1 + "/contracts/{id}"
	URLProposals         = URLContract + "/proposals"
	URLProposal          = URLContract + "/proposals/{index}"
	URLVoter             = URLContract + "/voters/{address}"
	URLWinner            = URLContract + "/winner"
	URLChairperson       = URLContract + "/chairperson"
)
