/*
Package errors provides semantic error types for the keyvaluestore library.

The package defines the failure modes of property attachment and field access, plus
the storage errors returned by the key-value backends. Every typed error matches its
sentinel through the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrConfiguration = errors.New("invalid property configuration")
	    ErrReadOnlyField = errors.New("field is read-only")
	    ErrUnknownField  = errors.New("unknown field")
	    ErrNotFound      = errors.New("record not found")
	    ErrAlreadyExists = errors.New("already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	)

Usage:

	// Attachment fails fast on descriptors that cannot be resolved
	if err := keyvaluestore.AttachMany(props...); errors.IsConfigurationError(err) {
	    log.Fatal(err)
	}

	// Writes to a field attached with ReadOnly fail at write time
	err := keyvaluestore.Set(user, "fullName", "x")
	if errors.IsReadOnlyField(err) {
	    // ...
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
