/*
Package registry associates Go types with the DynamoDB key layout used to persist them.

Index Map Registry:
Associates Go types with DynamoDB key patterns:

	registry.MustRegisterIndexMap[*User](map[string]string{
	    "PK":     "USER#{ID}",
	    "SK":     "USER#{ID}",
	    "GSI1PK": "EMAIL#{email_addr}",
	    "GSI1SK": "USER",
	})

PK and SK templates are expanded with the record id. Every other template is expanded
from the item's own attributes when the item is saved.

The registry is thread-safe and should be populated during initialization,
typically in init() functions next to the property attachments of the same type.
*/
package registry
