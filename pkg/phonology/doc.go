// Package phonology loads phonology definition documents and runs
// derivations over them.
//
// A definition is a TOML or YAML document listing features, symbols and
// rules. Rules are written as explicit segment lists rather than in a rule
// notation:
//
//	[[rules]]
//	name = "intervocalic-voicing"
//	segments = [
//	  { kind = "context", match = "[+syl]" },
//	  { kind = "action", match = "[-son]", action = "[+vc]" },
//	  { kind = "context", match = "[+syl]" },
//	]
//
// Matrices use the notation Matrix.String produces: "+f", "-f", "f",
// "f=2", "*f" (null), "$f" (variable), "f+=1" and "f-=1" (scalar
// arithmetic), and "<onset>" or "<*onset>" for tier membership. A bare
// label such as "a" names a symbol.
//
// The embedded "std" definition is a small feature system with a Latin
// symbol inventory; other definitions pull it in with imports = ["std"].
package phonology
