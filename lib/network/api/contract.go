package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/ballot/lib/ledger"
	"boscoin.io/ballot/lib/network/api/resource"
)

func (api NetworkHandlerAPI) view(r *http.Request) *ledger.BallotView {
	return ledger.NewBallotView(api.ledger, mux.Vars(r)["id"])
}

func (api NetworkHandlerAPI) GetProposalsHandler(w http.ResponseWriter, r *http.Request) {
	v := api.view(r)

	proposals, err := v.Proposals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResource(w, http.StatusOK, resource.NewProposalList(v.Contract(), proposals))
}

func (api NetworkHandlerAPI) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	index, err := parseUint64(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}

	v := api.view(r)
	p, err := v.Proposal(r.Context(), index)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResource(w, http.StatusOK, resource.NewProposal(v.Contract(), p))
}

func (api NetworkHandlerAPI) GetVoterHandler(w http.ResponseWriter, r *http.Request) {
	v := api.view(r)

	voter, err := v.Voter(r.Context(), mux.Vars(r)["address"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResource(w, http.StatusOK, resource.NewVoter(v.Contract(), voter))
}

func (api NetworkHandlerAPI) GetWinnerHandler(w http.ResponseWriter, r *http.Request) {
	v := api.view(r)

	p, err := v.Winner(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResource(w, http.StatusOK, resource.NewWinner(v.Contract(), p))
}

func (api NetworkHandlerAPI) GetChairpersonHandler(w http.ResponseWriter, r *http.Request) {
	v := api.view(r)

	address, err := v.Chairperson(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResource(w, http.StatusOK, resource.NewChairperson(v.Contract(), address))
}
