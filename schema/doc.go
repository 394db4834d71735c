/*

Package schema binds XML tree nodes (package dom) to the YANG schema they are
governed by, using github.com/openconfig/goyang/pkg/yang as the already-
parsed schema model: a *yang.Entry plays the role of a YANG statement, and
*yang.Modules (wrapped here as Collection) the role of the schema forest
root.

It provides the Schema Resolver, Child Comparator, Sort/Verify,
Search/Insert-Position, and Match/Diff-Pair operations over that tree.

*/
package schema
