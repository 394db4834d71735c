// Package engine is the configuration handle for the data engine: it
// threads the non-strict namespace flag, the identityref compatibility
// kludge, and the pretty-print indent through schema resolution, sorting,
// searching, matching, and the JSON codec as one cohesive API.
package engine
