package markup

import (
	"math/rand"
	"testing"
)

func allStyles() []Style {
	return []Style{StyleOf(Bold), StyleOf(Italic), StyleOf(Code), StyleOf(Highlight), LinkTo(testHref)}
}

func TestToggleBoldScenario(t *testing.T) {
	tree, s, e := Toggle(Plain("Hello World"), 0, 5, StyleOf(Bold))
	if got := RenderHTML(tree); got != "<strong>Hello</strong> World" {
		t.Fatalf("unexpected html %q", got)
	}
	if s != 0 || e != 5 {
		t.Fatalf("selection not restored: %d-%d", s, e)
	}
	tree, _, _ = Toggle(tree, s, e, StyleOf(Bold))
	if d := diffTrees(Plain("Hello World"), tree); d != "" {
		t.Fatalf("second toggle did not restore plain text (-want +got):\n%s", d)
	}
}

func TestTogglePartialUnwrapSplitsSpan(t *testing.T) {
	tree, s, e := Toggle(Tree{bold(txt("Hello World"))}, 6, 11, StyleOf(Bold))
	want := Tree{bold(txt("Hello ")), txt("World")}
	if d := diffTrees(want, tree); d != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", d)
	}
	if s != 6 || e != 11 {
		t.Fatalf("selection not restored: %d-%d", s, e)
	}
}

func TestToggleUnwrapMiddleKeepsBothSides(t *testing.T) {
	tree, _, _ := Toggle(Tree{italic(txt("abc"), bold(txt("def")))}, 2, 4, StyleOf(Italic))
	want := Tree{italic(txt("ab")), txt("c"), bold(txt("d")), italic(bold(txt("ef")))}
	if d := diffTrees(want, tree); d != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", d)
	}
}

func TestToggleWrapsGapBetweenSpans(t *testing.T) {
	tree, _, _ := Toggle(Tree{bold(txt("a")), txt("b"), bold(txt("c"))}, 0, 3, StyleOf(Bold))
	want := Tree{bold(txt("abc"))}
	if d := diffTrees(want, tree); d != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", d)
	}
}

func TestToggleComposesWithExistingStyles(t *testing.T) {
	tree, _, _ := Toggle(Tree{italic(txt("Hello"))}, 0, 5, StyleOf(Bold))
	want := Tree{italic(bold(txt("Hello")))}
	if d := diffTrees(want, tree); d != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", d)
	}
}

func TestToggleNestedAncestorCountsAsCovered(t *testing.T) {
	tree, _, _ := Toggle(Tree{bold(txt("He"), italic(txt("llo")))}, 1, 4, StyleOf(Bold))
	want := Tree{bold(txt("H")), txt("e"), italic(txt("ll")), bold(italic(txt("o")))}
	if d := diffTrees(want, tree); d != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", d)
	}
}

func TestToggleCollapsedIsNoop(t *testing.T) {
	in := Tree{bold(txt("ab")), txt("cd")}
	tree, s, e := Toggle(in, 3, 3, StyleOf(Italic))
	if d := diffTrees(in, tree); d != "" {
		t.Fatalf("collapsed toggle changed tree (-want +got):\n%s", d)
	}
	if s != 3 || e != 3 {
		t.Fatalf("unexpected selection %d-%d", s, e)
	}
}

func TestToggleLink(t *testing.T) {
	tree, _, _ := Toggle(Plain("Hello World"), 6, 11, LinkTo("https://google.com"))
	if got := RenderHTML(tree); got != `Hello <a href="https://google.com">World</a>` {
		t.Fatalf("unexpected html %q", got)
	}

	other, _, _ := Toggle(tree, 6, 11, LinkTo("https://example.org"))
	if got := RenderHTML(other); got != `Hello <a href="https://example.org">World</a>` {
		t.Fatalf("different href should replace the link, got %q", got)
	}

	cleared, _, _ := Toggle(tree, 6, 11, LinkTo(""))
	if got := RenderHTML(cleared); got != "Hello World" {
		t.Fatalf("empty href should remove the link, got %q", got)
	}

	untouched, _, _ := Toggle(tree, 0, 11, LinkTo(""))
	if d := diffTrees(tree, untouched); d != "" {
		t.Fatalf("empty href over partly linked text should do nothing (-want +got):\n%s", d)
	}
}

func TestTogglePartialLinkOverlapWraps(t *testing.T) {
	in := Tree{link("https://a.test", txt("ab")), link("https://b.test", txt("cd"))}
	tree, _, _ := Toggle(in, 1, 3, LinkTo("https://a.test"))
	want := Tree{link("https://a.test", txt("abc")), link("https://b.test", txt("d"))}
	if d := diffTrees(want, tree); d != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", d)
	}
}

func TestToggleDoesNotModifyInput(t *testing.T) {
	in := Tree{bold(txt("Hello World"))}
	before := in.Clone()
	_, _, _ = Toggle(in, 2, 7, StyleOf(Bold))
	_, _, _ = Toggle(in, 2, 7, StyleOf(Code))
	if d := diffTrees(before, in); d != "" {
		t.Fatalf("input changed (-before +after):\n%s", d)
	}
}

func coveredBy(tree Tree, start, end int, kind StyleKind) bool {
	for i := start; i < end; i++ {
		if !ActiveStyles(tree, i, i+1).Has(kind) {
			return false
		}
	}
	return true
}

func noneStyled(tree Tree, start, end int, kind StyleKind) bool {
	for i := start; i < end; i++ {
		if ActiveStyles(tree, i, i+1).Has(kind) {
			return false
		}
	}
	return true
}

func TestTogglePropertiesOverEverySelection(t *testing.T) {
	for name, tree := range sampleTrees() {
		text := tree.Text()
		n := tree.Len()
		for _, style := range allStyles() {
			for start := 0; start < n; start++ {
				for end := start + 1; end <= n; end++ {
					wasCovered := coveredBy(tree, start, end, style.Kind)

					once, s, e := Toggle(tree, start, end, style)
					if once.Text() != text {
						t.Fatalf("%s %s [%d,%d): text changed to %q", name, style.Kind, start, end, once.Text())
					}
					if s != start || e != end {
						t.Fatalf("%s %s [%d,%d): selection restored as [%d,%d)", name, style.Kind, start, end, s, e)
					}
					if err := Validate(once); err != nil {
						t.Fatalf("%s %s [%d,%d): %v", name, style.Kind, start, end, err)
					}
					if wasCovered {
						if !noneStyled(once, s, e, style.Kind) {
							t.Fatalf("%s %s [%d,%d): unwrap left the style behind", name, style.Kind, start, end)
						}
						continue
					}
					if !ActiveStyles(once, s, e).Has(style.Kind) || !coveredBy(once, s, e, style.Kind) {
						t.Fatalf("%s %s [%d,%d): wrap did not cover the selection", name, style.Kind, start, end)
					}
					twice, _, _ := Toggle(once, s, e, style)
					if twice.Text() != text {
						t.Fatalf("%s %s [%d,%d): second toggle changed text", name, style.Kind, start, end)
					}
					if !noneStyled(twice, s, e, style.Kind) {
						t.Fatalf("%s %s [%d,%d): second toggle kept the style", name, style.Kind, start, end)
					}
				}
			}
		}
	}
}

func TestToggleSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	styles := allStyles()
	for name, tree := range sampleTrees() {
		text := tree.Text()
		n := tree.Len()
		for step := 0; step < 200; step++ {
			a, b := rng.Intn(n+1), rng.Intn(n+1)
			tree, _, _ = Toggle(tree, a, b, styles[rng.Intn(len(styles))])
			if err := Validate(tree); err != nil {
				t.Fatalf("%s step %d: %v", name, step, err)
			}
			if tree.Text() != text {
				t.Fatalf("%s step %d: text changed to %q", name, step, tree.Text())
			}
		}
	}
}
