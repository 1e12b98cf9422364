/*
Package ddb provides a DynamoDB implementation of the key-value contract.

An Item holds the attributes of one DynamoDB item. Get and Set work on the local copy,
so attached fields never block on the network; Load, Save and Delete talk to the table.

Key Features:

Macro Expansion:
Index maps come from the registry package. PK and SK are expanded with the item id,
every other index attribute with the item's own attributes when it is saved:

	registry.MustRegisterIndexMap[*User](map[string]string{
	    "PK":     "USER#{ID}",          // Becomes "USER#123"
	    "SK":     "PROFILE",            // Static value
	    "GSI1PK": "EMAIL#{email_addr}", // From the email_addr attribute
	})

	it, err := ddb.ItemFor[*User](client, "my-table", "123")
	u := &User{Item: it}
	_ = keyvaluestore.Set(u, "email", "a@x.com")
	err = u.Save(ctx)

Every saved item also carries an EntityType attribute naming its Go type.
*/
package ddb
