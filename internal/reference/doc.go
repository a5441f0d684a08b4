// Package reference finds file-location references in free-form text.
//
// Two surface syntaxes are recognized:
//
//	src/auth/login.ts:45          colon notation (line)
//	./src/auth/login.ts:45:10     colon notation (line and column)
//	[login](src/auth/login.ts#L45)       markdown link
//	[login](src/auth/login.ts#L45-L60)   markdown link with range
//
// Colon notation is rejected when it touches a backtick, a closing
// bracket, an opening paren or a word character, so references inside
// inline code spans or longer identifiers are left alone. The boundary
// checks are zero-width lookarounds evaluated by a backtracking engine
// (github.com/dlclark/regexp2), which gives the same match set a
// JavaScript or .NET engine would.
//
// Extract returns the references found; Linkify rewrites colon-notation
// matches into anchors whose href carries an encoded Payload.
package reference
