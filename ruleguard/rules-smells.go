package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guard-ifs returning the same value are mergeable:
	//   if a { return err }
	//   if b { return err }
	// => if a || b { return err }
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	// Same pattern with continue inside loops.
	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	// Nested for-loops are not always wrong, but worth a look.
	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}

func timing(m dsl.Matcher) {
	// Elapsed-time math should go through time.Since; in a codebase built
	// around injected clocks a literal time.Now() here is usually a bug.
	m.Match(`time.Now().Sub($x)`).
		Report(`use time.Since instead of time.Now().Sub`).
		Suggest(`time.Since($x)`)

	m.Match(`$d.Seconds() >= 60`, `$d.Seconds() > 59`).
		Report(`comparing seconds against a minute boundary; consider comparing time.Duration values directly`)
}
