package ballot

import (
	"boscoin.io/ballot/lib/contract/storage"
	"boscoin.io/ballot/lib/errors"
	ballotStorage "boscoin.io/ballot/lib/storage"
)

const (
	headerKey      = "ballot"
	voterKeyPrefix = "voter-"
)

// ItemStore is the contract storage the ballot is saved in.
type ItemStore interface {
	GetStorageItem(key string) (*storage.StorageItem, error)
	PutStorageItem(key string, v interface{}) error
	GetStorageItems(prefix string, options ballotStorage.ListOptions) ([]*storage.StorageItem, error)
}

type header struct {
	Chairperson      string     `json:"chairperson"`
	Proposals        []Proposal `json:"proposals"`
	StrictDelegation bool       `json:"strict_delegation"`
}

func voterKey(address string) string {
	return voterKeyPrefix + address
}

// Save writes the proposals and the voters changed since the last `Save()`.
func (b *Ballot) Save(store ItemStore) error {
	h := header{
		Chairperson:      b.chairperson,
		Proposals:        b.proposals,
		StrictDelegation: b.strictDelegation,
	}
	if err := store.PutStorageItem(headerKey, h); err != nil {
		return err
	}

	for address := range b.dirty {
		if err := store.PutStorageItem(voterKey(address), b.voters[address]); err != nil {
			return err
		}
	}
	b.dirty = map[string]struct{}{}

	return nil
}

// Load reads the whole ballot from the store.
func Load(store ItemStore) (*Ballot, error) {
	item, err := store.GetStorageItem(headerKey)
	if err != nil {
		return nil, err
	} else if item == nil {
		return nil, errors.ErrorBallotNotFound
	}

	var h header
	if err = item.Decode(&h); err != nil {
		return nil, err
	}
	if len(h.Proposals) < 1 {
		return nil, errors.ErrorInvalidConfiguration
	}

	b := &Ballot{
		chairperson:      h.Chairperson,
		proposals:        h.Proposals,
		strictDelegation: h.StrictDelegation,
		voters:           map[string]*Voter{},
		dirty:            map[string]struct{}{},
	}

	items, err := store.GetStorageItems(voterKeyPrefix, nil)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		var v Voter
		if err = item.Decode(&v); err != nil {
			return nil, err
		}
		b.voters[v.Address] = &v
	}

	return b, nil
}

// LoadVoters lists the stored voters without loading the whole ballot.
func LoadVoters(store ItemStore, options ballotStorage.ListOptions) (voters []Voter, err error) {
	if options != nil && options.Cursor() != nil {
		options = ballotStorage.NewDefaultListOptions(
			options.Reverse(),
			[]byte(voterKey(string(options.Cursor()))),
			options.Limit(),
		)
	}

	items, err := store.GetStorageItems(voterKeyPrefix, options)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		var v Voter
		if err = item.Decode(&v); err != nil {
			return nil, err
		}
		voters = append(voters, v)
	}

	return
}

// LoadVoter reads one voter; unknown address returns the voter without
// right to vote.
func LoadVoter(store ItemStore, address string) (Voter, error) {
	item, err := store.GetStorageItem(voterKey(address))
	if err != nil {
		return Voter{}, err
	} else if item == nil {
		return Voter{Address: address}, nil
	}

	var v Voter
	err = item.Decode(&v)

	return v, err
}
