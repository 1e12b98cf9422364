/*
Package keyvaluestore exposes key-value backed data as named, accessor-based fields on
arbitrary Go types, without hand-writing an accessor per field.

Any type implementing the minimal key-value contract

	type KeyValueStore interface {
	    Get(key string, fallback any) (any, error)
	    Set(key string, value any) error
	}

can declaratively attach virtual properties. Each Property names a field and either
points it at a storage key (default accessors) or supplies custom accessor logic.
Setters can be disabled to make a field read-only.

The library follows a define → attach → access workflow:
  - Define: describe each field as a Property value
  - Attach: install the properties on a type once, typically from init()
  - Access: read and write fields by name on any instance of that type

Basic Usage:

	type User struct{ *memory.Store }

	func init() {
	    err := keyvaluestore.AttachMany(
	        keyvaluestore.Property[*User]{Name: "email", Key: "email_addr", Doc: "Primary email"},
	        keyvaluestore.Property[*User]{
	            Name:   "fullName",
	            Getter: keyvaluestore.CustomGetter(fullName),
	            Setter: keyvaluestore.ReadOnly[*User](),
	        },
	    )
	    if err != nil {
	        panic(err)
	    }
	}

	u := &User{Store: memory.New()}
	_ = keyvaluestore.Set(u, "email", "a@x.com")
	email, _ := keyvaluestore.Value[string](u, "email")

Attached fields live in a per-type table shared by the whole process. Every instance of
the type sees them, including instances created before attachment. Attachment is a
construction-time step: finish it before instances are shared between goroutines.

Backends for the key-value contract live under kvstore/ (memory, bolt, ddb), and the
schema package builds properties from YAML definitions.
*/
package keyvaluestore
