package cache

type hitResult[T any] struct {
	data    T
	valid   bool
	claimed bool
}

// Cache is a short lived store where a missing key can be claimed by one caller while it is being created.
// Other callers wait for the claimed entry instead of creating it again.
type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	wait()
}
