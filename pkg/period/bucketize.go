package period

// TimeBoxed is anything with an active period.
type TimeBoxed interface {
	Range() RangeKey
}

// Bucket groups records sharing an identical (begin, end) pair.
type Bucket[R TimeBoxed] struct {
	Begin   string
	End     string
	Records []R
}

// Bucketize groups records by their exact range. Buckets and the records inside them keep the
// order in which they first appear in the input. The input slice is not modified.
func Bucketize[R TimeBoxed](records []R) *OrderedMap[RangeKey, Bucket[R]] {
	buckets := NewOrderedMap[RangeKey, Bucket[R]]()
	for _, record := range records {
		key := record.Range()
		bucket, ok := buckets.Get(key)
		if !ok {
			bucket = Bucket[R]{Begin: key.Begin, End: key.End}
		}
		bucket.Records = append(bucket.Records, record)
		buckets.Set(key, bucket)
	}
	return buckets
}
