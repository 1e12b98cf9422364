/*
Package bolt provides a boltdb implementation of the key-value contract.

Each Record lives in a nested bucket, bucket/id, and every key is a JSON-encoded value
inside it:

	db := bolt.NewDB("/var/lib/app/props.db")
	if err := db.Open(ctx); err != nil {
	    return err
	}
	defer db.Close()

	type User struct{ *bolt.Record }
	u := &User{Record: db.Record("users", "42")}
	_ = keyvaluestore.Set(u, "email", "a@x.com")

Reads of a record or key that was never written return the caller's fallback.
*/
package bolt
