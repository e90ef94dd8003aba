package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"
)

type APIResource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

type ResourceList struct {
	Resources []APIResource
	SelfLink  string
}

func (l ResourceList) Resource() *hal.Resource {
	rl := hal.NewResource(l, l.LinkSelf())

	var rCollection hal.ResourceCollection
	for _, apiResource := range l.Resources {
		rCollection = append(rCollection, apiResource.Resource())
	}
	rl.EmbedCollection("records", rCollection)

	return rl
}

func (l ResourceList) LinkSelf() string {
	return l.SelfLink
}

func (l ResourceList) GetMap() hal.Entry {
	return hal.Entry{
		"total": len(l.Resources),
	}
}

func contractURL(tpl, contract string) string {
	return strings.Replace(tpl, "{id}", contract, -1)
}

func proposalURL(contract string, index uint64) string {
	return strings.Replace(contractURL(URLProposal, contract), "{index}", strconv.FormatUint(index, 10), -1)
}
