// Package catalog holds the tables declared during an analysis session.
//
// A Table is built column by column while a CREATE TABLE statement is being
// analyzed and handed to the Catalog once the statement ends. From then on the
// catalog owns it. The catalog never forgets a table; SELECT and INSERT
// statements resolve their table references against it by name.
//
// Example usage:
//
//	users := catalog.NewTable("users")
//	_ = users.AddColumn(catalog.NewColumn("id", types.Integer))
//	_ = users.AddColumn(catalog.NewColumn("active", types.Boolean))
//
//	cat := catalog.New()
//	cat.AddTable(users)
//
//	if tbl, ok := cat.Table("USERS"); ok {
//		col, _ := tbl.Column("id")
//		fmt.Println(col.Type) // integer
//	}
package catalog
