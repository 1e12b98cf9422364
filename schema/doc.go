/*
Package schema builds keyvaluestore properties from YAML definitions.

A schema file declares the fields of one or more types:

	version: "1"
	types:
	  - type: user
	    bucket: users
	    properties:
	      - name: email
	        key: email_addr
	        doc: Primary email address
	        format: email
	      - name: id
	        readonly: true
	      - name: locale
	        default: en-US

Defaults applied by Parse:
  - version defaults to "1"
  - key defaults to name
  - bucket defaults to type

Properties turns a Definition into []keyvaluestore.Property[T]:
  - readonly disables the setter
  - format validates string writes with the strfmt registry before storing them
  - default becomes the fallback passed to Get

Attach validates every property before attaching any of them.
*/
package schema
