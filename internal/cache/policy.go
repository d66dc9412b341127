package cache

import "relaypager/internal/domain/entity"

// ReadFunc derives the visible collection from the cached one.
type ReadFunc func(*entity.Collection) *entity.Collection

// Policy pairs how pages are merged with how the cache is read.
type Policy struct {
	Name  string
	Merge MergeFunc
	Read  ReadFunc
}

// Identity is the read function that shows the cache as stored.
func Identity(c *entity.Collection) *entity.Collection {
	return c
}

// ReplacePolicy shows one page at a time.
func ReplacePolicy() Policy {
	return Policy{Name: "replace", Merge: Replace, Read: Identity}
}

// AppendPolicy accumulates pages for load-more lists.
func AppendPolicy() Policy {
	return Policy{Name: "append", Merge: Append, Read: Identity}
}

// ContiguousPolicy accumulates pages and shows only the gapless run from bounds.Min.
func ContiguousPolicy(bounds KeyBounds) Policy {
	return Policy{
		Name:  "contiguous",
		Merge: Append,
		Read: func(c *entity.Collection) *entity.Collection {
			return Contiguous(c, bounds)
		},
	}
}
