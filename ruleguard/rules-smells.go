package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guards returning the same value are mergeable with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	// Nested loops around map/slice payloads tend to hide quadratic scans.
	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)

	m.Match(`fmt.Errorf("%s", $msg)`).
		Report(`fmt.Errorf with a single %s adds nothing; use errors.New or keep the original error`)
}
