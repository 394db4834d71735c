/*

Package value converts between the textual body of a YANG leaf and a typed
scalar value, resolving the leaf's base kind (and, for decimal64, its
fraction-digits scale) from a *yang.YangType.

Parsing is total: every body either yields a Value or a *ParseError /
*TypeResolutionError describing why it does not. Values compare with Compare,
used by the schema package's child comparator to order leaf-list instances
and list keys.

*/
package value
