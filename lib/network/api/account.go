package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/ballot/lib/network/api/resource"
)

func (api NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	ac, err := api.ledger.Account(r.Context(), address)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeResource(w, http.StatusOK, resource.NewAccount(ac))
}
