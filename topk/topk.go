package topk

// @Author KHighness
// @Update 2023-07-09

// TopK item.
type Item struct {
	Key   string
	Count uint32
}

// TopK algorithm interface.
type TopK interface {

	// Add adds an item to the list of top k.
	// It returns two values:
	//	- The first return value is the expelled key if any item was expelled.
	//	- The second return value represents if the item is currently tracked.
	Add(item string, incr uint32) (string, bool)

	// List returns all the items in the top k, hottest first.
	List() []Item

	// Total returns the total count of the items.
	Total() uint64

	// MinCount returns the coldest tracked count, zero when nothing is tracked.
	MinCount() uint32

	// MaxCount returns the hottest tracked count, zero when nothing is tracked.
	MaxCount() uint32

	// Expelled watches at the expelled items.
	Expelled() <-chan Item

	// Fading halves every count, decaying history.
	Fading()
}
