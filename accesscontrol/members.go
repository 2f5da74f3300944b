package accesscontrol

import "github.com/ethereum/go-ethereum/common"

// memberSet is an insertion ordered set of accounts. Removal swaps the last member into the
// freed slot so that membership checks and enumeration stay O(1).
type memberSet struct {
	index map[common.Address]int
	list  []common.Address
}

func newMemberSet() *memberSet {
	return &memberSet{index: make(map[common.Address]int)}
}

func (s *memberSet) contains(account common.Address) bool {
	_, ok := s.index[account]
	return ok
}

// add appends account and returns false if it was already present.
func (s *memberSet) add(account common.Address) bool {
	if s.contains(account) {
		return false
	}
	s.index[account] = len(s.list)
	s.list = append(s.list, account)

	return true
}

// remove deletes account and returns the slot it occupied, or -1 if it was absent.
func (s *memberSet) remove(account common.Address) int {
	i, ok := s.index[account]
	if !ok {
		return -1
	}

	last := len(s.list) - 1
	if i != last {
		moved := s.list[last]
		s.list[i] = moved
		s.index[moved] = i
	}
	s.list = s.list[:last]
	delete(s.index, account)

	return i
}

// restore puts account back into slot i, exactly undoing remove.
func (s *memberSet) restore(account common.Address, i int) {
	if i == len(s.list) {
		s.list = append(s.list, account)
	} else {
		moved := s.list[i]
		s.index[moved] = len(s.list)
		s.list = append(s.list, moved)
		s.list[i] = account
	}
	s.index[account] = i
}
