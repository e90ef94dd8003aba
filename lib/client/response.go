package client

import (
	"boscoin.io/ballot/lib/account"
	"boscoin.io/ballot/lib/ledger"
)

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Account struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	account.Account
}

type Receipt struct {
	Links struct {
		Self    Link `json:"self"`
		Account Link `json:"account"`
	} `json:"_links"`

	ledger.Receipt
}
