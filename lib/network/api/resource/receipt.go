package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/ballot/lib/ledger"
)

type Receipt struct {
	r *ledger.Receipt
}

func NewReceipt(r *ledger.Receipt) *Receipt {
	return &Receipt{r: r}
}

func (r Receipt) GetMap() hal.Entry {
	entry := hal.Entry{
		"hash":        r.r.Hash,
		"source":      r.r.Source,
		"sequence_id": r.r.SequenceID,
		"status":      r.r.Status,
		"fee":         r.r.Fee,
	}
	if len(r.r.Confirmed) > 0 {
		entry["confirmed"] = r.r.Confirmed
	}
	if r.r.Error != nil {
		entry["error"] = r.r.Error
	}
	if len(r.r.Results) > 0 {
		entry["results"] = r.r.Results
	}

	return entry
}

func (r Receipt) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	res.AddLink("account", hal.NewLink(strings.Replace(URLAccounts, "{id}", r.r.Source, -1)))
	for _, address := range r.r.ContractAddresses() {
		res.AddLink("contract", hal.NewLink(contractURL(URLProposals, address)))
	}

	return res
}

func (r Receipt) LinkSelf() string {
	return strings.Replace(URLTransactionByHash, "{id}", r.r.Hash, -1)
}
