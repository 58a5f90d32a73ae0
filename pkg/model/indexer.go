package model

// Indexer gives a unique 1-based index to every (period, week, slot, team) combination of
// the scheduling tensor and vice versa. All attributes are 0-based.
type Indexer interface {
	// Returns a unique index for a combination of the tensor's attributes
	Index(period, week, slot, team uint64) uint64
	// Returns the combination of the tensor's attributes behind an index
	Attributes(index uint64) (period, week, slot, team uint64)
	// Returns a unique index for a (period, week, slot) cell, in the range [1, periods*weeks*slots]
	Cell(period, week, slot uint64) uint64
	// Returns the number of indices produced by Index
	Size() uint64
}

func NewIndexer(periods, weeks, slots, teams uint64) Indexer {
	return &indexerImplementation{
		periods: periods,
		weeks:   weeks,
		slots:   slots,
		teams:   teams,
	}
}

// NewInstanceIndexer returns the indexer of the instance's full tensor
func NewInstanceIndexer(instance Instance) Indexer {
	return NewIndexer(uint64(instance.Periods), uint64(instance.Weeks), uint64(instance.Slots), uint64(instance.Teams))
}

type indexerImplementation struct {
	periods uint64
	weeks   uint64
	slots   uint64
	teams   uint64
}

func (indexer *indexerImplementation) Index(period, week, slot, team uint64) uint64 {
	return period + indexer.periods*week + indexer.periods*indexer.weeks*slot + indexer.periods*indexer.weeks*indexer.slots*team + 1
}

func (indexer *indexerImplementation) Attributes(index uint64) (period, week, slot, team uint64) {
	index = index - 1
	period = index % indexer.periods
	index = index / indexer.periods

	week = index % indexer.weeks
	index = index / indexer.weeks

	slot = index % indexer.slots
	index = index / indexer.slots

	team = index % indexer.teams

	return period, week, slot, team
}

func (indexer *indexerImplementation) Cell(period, week, slot uint64) uint64 {
	return indexer.Index(period, week, slot, 0)
}

func (indexer *indexerImplementation) Size() uint64 {
	return indexer.periods * indexer.weeks * indexer.slots * indexer.teams
}
