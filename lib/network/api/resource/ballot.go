package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/ballot/lib/ballot"
)

type Proposal struct {
	contract string
	p        ballot.Proposal
}

func NewProposal(contract string, p ballot.Proposal) *Proposal {
	return &Proposal{contract: contract, p: p}
}

func (p Proposal) GetMap() hal.Entry {
	return hal.Entry{
		"index":      p.p.Index,
		"name":       p.p.Name,
		"vote_count": p.p.VoteCount,
	}
}

func (p Proposal) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("proposals", hal.NewLink(contractURL(URLProposals, p.contract)))

	return r
}

func (p Proposal) LinkSelf() string {
	return proposalURL(p.contract, p.p.Index)
}

func NewProposalList(contract string, proposals []ballot.Proposal) ResourceList {
	list := ResourceList{SelfLink: contractURL(URLProposals, contract)}
	for _, p := range proposals {
		list.Resources = append(list.Resources, NewProposal(contract, p))
	}

	return list
}

type Voter struct {
	contract string
	v        ballot.Voter
}

func NewVoter(contract string, v ballot.Voter) *Voter {
	return &Voter{contract: contract, v: v}
}

func (v Voter) GetMap() hal.Entry {
	entry := hal.Entry{
		"address": v.v.Address,
		"weight":  v.v.Weight,
		"voted":   v.v.Voted,
	}
	if len(v.v.Delegate) > 0 {
		entry["delegate"] = v.v.Delegate
	}
	if v.v.Vote != nil {
		entry["vote"] = *v.v.Vote
	}

	return entry
}

func (v Voter) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	if v.v.Vote != nil {
		r.AddLink("vote", hal.NewLink(proposalURL(v.contract, *v.v.Vote)))
	}
	if len(v.v.Delegate) > 0 {
		r.AddLink("delegate", hal.NewLink(strings.Replace(contractURL(URLVoter, v.contract), "{address}", v.v.Delegate, -1)))
	}

	return r
}

func (v Voter) LinkSelf() string {
	return strings.Replace(contractURL(URLVoter, v.contract), "{address}", v.v.Address, -1)
}

// Winner is the winning proposal.
type Winner struct {
	Proposal
}

func NewWinner(contract string, p ballot.Proposal) *Winner {
	return &Winner{Proposal{contract: contract, p: p}}
}

func (w Winner) GetMap() hal.Entry {
	entry := w.Proposal.GetMap()
	entry["winner_name"] = w.p.Name

	return entry
}

func (w Winner) Resource() *hal.Resource {
	r := hal.NewResource(w, contractURL(URLWinner, w.contract))
	r.AddLink("proposal", hal.NewLink(w.Proposal.LinkSelf()))

	return r
}

type Chairperson struct {
	contract string
	address  string
}

func NewChairperson(contract, address string) *Chairperson {
	return &Chairperson{contract: contract, address: address}
}

func (c Chairperson) GetMap() hal.Entry {
	return hal.Entry{
		"contract":    c.contract,
		"chairperson": c.address,
	}
}

func (c Chairperson) Resource() *hal.Resource {
	r := hal.NewResource(c, c.LinkSelf())
	r.AddLink("account", hal.NewLink(strings.Replace(URLAccounts, "{id}", c.address, -1)))

	return r
}

func (c Chairperson) LinkSelf() string {
	return contractURL(URLChairperson, c.contract)
}
