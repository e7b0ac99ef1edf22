package transform

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/tagforge/internal/extractor"
	"github.com/conneroisu/tagforge/internal/renderer"
)

func TestTransformSingleRegion(t *testing.T) {
	result := Transform(`var x = (<Loading />);`, renderer.DefaultConfig())

	assert.Equal(t, `var x = Document.CreateElement("Loading", new LoadingProps { });`, result.Output)
	assert.Equal(t, 1, result.Report.Passes)
	require.Len(t, result.Report.Outcomes, 1)
	assert.True(t, result.Report.Outcomes[0].Success())
	assert.Equal(t, `(<Loading />)`, result.Report.Outcomes[0].Original)
}

func TestTransformNoRegions(t *testing.T) {
	src := `var x = compute(1, 2);`
	result := Transform(src, renderer.DefaultConfig())

	assert.Equal(t, src, result.Output)
	assert.Equal(t, 0, result.Report.Passes)
	assert.Empty(t, result.Report.Outcomes)
}

func TestTransformIndependentRegionsSinglePass(t *testing.T) {
	src := `var a = (<x/>); var b = (<y/>); var c = (<z/>);`
	result := Transform(src, renderer.DefaultConfig())

	// Generated text contains no new "(<" sequence, so one pass handles
	// every region and the next sweep finds nothing.
	assert.Equal(t, 1, result.Report.Passes)
	assert.Len(t, result.Report.Outcomes, 3)
	assert.Equal(t, 3, result.Report.Succeeded())
	assert.NotContains(t, result.Output, "(<")
}

func TestTransformFixpointReachesNestedRegion(t *testing.T) {
	// The inner region sits inside a code block, invisible to the first
	// sweep; it surfaces only after the outer splice.
	src := `(<div>{(<span>hi</span>)}</div>)`
	result := Transform(src, renderer.DefaultConfig())

	assert.Equal(t, 2, result.Report.Passes)
	assert.Equal(t, 2, result.Report.Succeeded())
	assert.Contains(t, result.Output, `Document.CreateElement("span", new HtmlSpanProps { },`)
	assert.Contains(t, result.Output, `"hi"`)
	assert.NotContains(t, result.Output, "(<span")
}

func TestTransformFailedMatchKeepsOriginalText(t *testing.T) {
	src := `var bad = (<div><span></div>); var ok = (<Ok />);`
	result := Transform(src, renderer.DefaultConfig())

	// The mismatched closing tag fails that one match only; the sibling
	// still transforms and the failed region survives verbatim.
	assert.Contains(t, result.Output, `(<div><span></div>)`)
	assert.Contains(t, result.Output, `Document.CreateElement("Ok", new OkProps { })`)
	assert.GreaterOrEqual(t, result.Report.Failed(), 1)
	assert.GreaterOrEqual(t, result.Report.Succeeded(), 1)
}

func TestTransformStopsWithoutProgress(t *testing.T) {
	src := `var bad = (<div);`
	result := Transform(src, renderer.DefaultConfig())

	assert.Equal(t, src, result.Output)
	assert.Equal(t, 1, result.Report.Passes)
	assert.Equal(t, 0, result.Report.Succeeded())
	require.Len(t, result.Report.Outcomes, 1)
	assert.Error(t, result.Report.Outcomes[0].Err)
}

func TestTransformMatchesBypassesFirstExtraction(t *testing.T) {
	src := `left (<p>hi</p>) right`
	matches := extractor.Extract(src)
	require.Len(t, matches, 1)

	direct := Transform(src, renderer.DefaultConfig())
	viaMatches := TransformMatches(src, matches, renderer.DefaultConfig())

	if diff := cmp.Diff(direct.Output, viaMatches.Output); diff != "" {
		t.Errorf("outputs diverge (-direct +viaMatches):\n%s", diff)
	}
}

func TestTransformSpliceOffsetsWithSurroundingText(t *testing.T) {
	src := "head\n" +
		"var a = (<one/>);\n" +
		"middle text that must survive\n" +
		"var b = (<two/>);\n" +
		"tail"

	result := Transform(src, renderer.DefaultConfig())

	want := "head\n" +
		`var a = Document.CreateElement("one", new HtmlOneProps { });` + "\n" +
		"middle text that must survive\n" +
		`var b = Document.CreateElement("two", new HtmlTwoProps { });` + "\n" +
		"tail"
	if diff := cmp.Diff(want, result.Output); diff != "" {
		t.Errorf("spliced output mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformMultilineRegion(t *testing.T) {
	src := `return (<div className="a"><span>{x}</span></div>);`
	result := Transform(src, renderer.DefaultConfig())

	want := `return Document.CreateElement("div", new HtmlDivProps { ClassName = "a" },
    Document.CreateElement("span", new HtmlSpanProps { },
        x
    )
);`
	if diff := cmp.Diff(want, result.Output); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformDeterministic(t *testing.T) {
	src := `var a = (<div id="1">text</div>); var b = (<Widget prop={v} />);`

	first := Transform(src, renderer.DefaultConfig())
	second := Transform(src, renderer.DefaultConfig())
	assert.Equal(t, first.Output, second.Output)
}

func TestTransformIdempotentOnOwnOutput(t *testing.T) {
	src := `var a = (<div>text</div>);`

	once := Transform(src, renderer.DefaultConfig())
	twice := Transform(once.Output, renderer.DefaultConfig())
	assert.Equal(t, once.Output, twice.Output)
}

func TestReportCounts(t *testing.T) {
	report := Report{Outcomes: []Outcome{
		{Original: "a", Generated: "g"},
		{Original: "b", Err: assert.AnError},
		{Original: "c", Generated: "g2"},
	}}

	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
}

func TestTransformArgumentCountMatchesChildren(t *testing.T) {
	result := Transform(`(<ul><li>a</li><li>b</li></ul>)`, renderer.DefaultConfig())
	require.Equal(t, 1, result.Report.Succeeded())

	// 2 fixed arguments plus one per child.
	out := result.Report.Outcomes[0].Generated
	assert.Equal(t, 2, strings.Count(out, `Document.CreateElement("li"`))
}
