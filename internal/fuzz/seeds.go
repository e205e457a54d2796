package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

// languageSeeds covers the grammar surface: one snippet per construct family,
// plus a couple of malformed inputs to seed the error-recovery paths.
var languageSeeds = []string{
	"",
	"fn main() -> u32 { u32:0 }\n",
	"fn add(a: u32, b: u32) -> u32 { a + b }\n",
	"import std;\n\nfn f(x: u32) -> u32 { std::popcount(x) }\n",
	"const N = u32:8;\ntype Word = bits[32];\n",
	"enum Opcode : u2 {\n    ADD = 0,\n    SUB = 1,\n}\n",
	"struct Point { x: u32, y: u32 }\n\nfn origin() -> Point { Point { x: u32:0, y: u32:0 } }\n",
	"fn pick(v: u32) -> u32 {\n    match v {\n        u32:0 => u32:1,\n        _ => v,\n    }\n}\n",
	"fn sum() -> u32 {\n    for (i, acc): (u32, u32) in u32:0..u32:8 {\n        acc + i\n    }(u32:0)\n}\n",
	"fn cond(p: bool, a: u32, b: u32) -> u32 { if p { a } else { b } }\n",
	"fn cast(x: u8) -> u32 { x as u32 }\n",
	"fn slices(a: u32) -> u8 { a[0:8] as u8 }\n",
	"fn tup() -> (u32,) { (u32:1,) }\n",
	"fn arr() -> u32[4] { u32[4]:[u32:0, ...] }\n",
	"fn shout(x: u32) -> u32 { trace_fmt!(\"x = {}\", x); x }\n",
	"proc Counter {\n    limit: u32;\n    config(limit: u32) { (limit,) }\n    init { u32:0 }\n    next(state: u32) { state + u32:1 }\n}\n",
	"// leading comment\nfn g() -> u32 {\n    let x = u32:1; // inline\n    x\n}\n",
	"#[test]\nfn smoke() { assert_eq(u32:1, u32:1) }\n",
	"fn bad( { }\n",
	"$$ not silica at all $$\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
