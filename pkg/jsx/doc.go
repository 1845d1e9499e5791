// Package jsx implements the single-pass JSX-to-React.createElement
// transform spec §4.4 (C5) describes. There is no AST: an element is
// recognized and emitted by a small recursive-descent scan that tracks just
// enough state (attribute name/value, brace depth, quote mode) to find the
// matching close tag, mirroring the original's jsx_parser.cpp. Comments and
// string/template literals elsewhere in the source are copied through
// untouched by a second, source-level mode machine in transform.go.
//
// # What gets rewritten
//
// Transform rewrites markup expressions in place and leaves everything
// else byte-for-byte untouched:
//
//	const x = <div className="a">Hello {name}</div>;
//	// becomes:
//	const x = React.createElement('div', { "className": 'a' }, 'Hello ', name);
//
// A component reference (tag name starting uppercase, "_", "$", or
// containing ".") is emitted unquoted as the first argument instead of as
// a string literal:
//
//	<Card.Header title="Hi" />
//	// becomes:
//	React.createElement(Card.Header, { "title": 'Hi' })
//
// # React binding
//
// ToModule additionally prepends a prologue obtaining a React binding from
// a well-known global when src does not already import or require react
// itself (checked anywhere in the file, not just its header):
//
//	out := jsx.ToModule(src)
//
// # Usage
//
//	transformed := jsx.Transform(src)        // rewrite markup only
//	module := jsx.ToModule(src)               // rewrite + React prologue
package jsx
