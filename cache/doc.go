// Package cache memoizes tool results across runs.
//
// A result is stored under the fingerprint of the tool name and its canonical
// arguments. Entries are only ever added or overwritten with the same value;
// nothing expires and nothing is deleted, so a result recorded by an earlier
// run is served for as long as the store exists.
//
// Two stores are provided. FileStore keeps a single JSON object on disk and
// rewrites it in full after every new entry, which keeps the file readable and
// easy to ship around. BadgerStore keeps entries in a Badger key-value
// database for larger runs.
//
//	store := cache.OpenFile("tool_cache.json")
//	results := cache.New(store)
//	defer results.Close()
package cache
