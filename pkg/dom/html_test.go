package dom_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/dom"
)

const page = `<!doctype html>
<html><body>
<form id="main-form">
  <input name="form-name" value="Ada">
  <span id="hint-form-name" style="display: none; color: red;">Required</span>
  <input type="radio" name="contact-type" value="enquiry">
  <input type="radio" name="contact-type" value="quote" checked>
  <div id="form-box-website">
    <input type="radio" name="website" value="yes">
    <input type="radio" name="website" value="no">
  </div>
  <textarea name="form-message">hello there</textarea>
  <select name="budget">
    <option value="small">Small</option>
    <option value="large" selected>Large</option>
  </select>
  <input type="checkbox" name="terms">
  <input type="submit" name="send" value="Send">
</form>
<form id="single-form"><input name="other-name" value="keep"></form>
</body></html>`

func parse(t *testing.T) *dom.HTMLDocument {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	return doc
}

func TestLookups(t *testing.T) {
	t.Parallel()
	doc := parse(t)

	name := dom.FirstByName(doc, "form-name")
	require.NotNil(t, name)
	assert.Equal(t, "input", name.Tag())
	assert.Equal(t, "Ada", name.Value())

	assert.Len(t, dom.ByName(doc, "website"), 2)
	assert.Empty(t, dom.ByName(doc, "missing"))
	assert.Nil(t, dom.FirstByName(doc, "missing"))

	box := dom.ByID(doc, dom.GroupBoxID("website"))
	require.NotNil(t, box)
	assert.Equal(t, "div", box.Tag())

	hint := dom.ByID(doc, dom.HintID("form-name"))
	require.NotNil(t, hint)
	assert.Equal(t, "none", hint.Display())

	value, ok := dom.CheckedValue(doc, "contact-type")
	assert.True(t, ok)
	assert.Equal(t, "quote", value)

	_, ok = dom.CheckedValue(doc, "website")
	assert.False(t, ok)
}

func TestValues(t *testing.T) {
	t.Parallel()
	doc := parse(t)

	assert.Equal(t, "hello there", dom.FirstByName(doc, "form-message").Value())
	assert.Equal(t, "large", dom.FirstByName(doc, "budget").Value())
	assert.False(t, dom.FirstByName(doc, "terms").Checked())
}

func TestSelectors(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `[name="a\"b"]`, dom.NameSelector(`a"b`))
	assert.Equal(t, `[id="hint-x"]`, dom.IDSelector(dom.HintID("x")))
	assert.Equal(t, "form-box-plan", dom.GroupBoxID("plan"))
}

func TestIndicators(t *testing.T) {
	t.Parallel()
	doc := parse(t)

	input := dom.FirstByName(doc, "form-name")
	input.AddClass("invalid")
	assert.True(t, input.HasClass("invalid"))
	input.RemoveClass("invalid")
	assert.False(t, input.HasClass("invalid"))
	_, hasClass := input.Attr("class")
	assert.False(t, hasClass)

	hint := dom.ByID(doc, dom.HintID("form-name"))
	hint.SetDisplay("block")
	assert.Equal(t, "block", hint.Display())
	style, _ := hint.Attr("style")
	assert.Equal(t, "display: block; color: red;", style)

	hint.SetDisplay("")
	assert.Equal(t, "", hint.Display())
	style, _ = hint.Attr("style")
	assert.Equal(t, "color: red;", style)

	plain := dom.ByID(doc, "main-form")
	plain.SetDisplay("none")
	assert.Equal(t, "none", plain.Display())
	plain.SetDisplay("")
	_, hasStyle := plain.Attr("style")
	assert.False(t, hasStyle)
}

func TestFill(t *testing.T) {
	t.Parallel()
	doc := parse(t)

	doc.Fill("#main-form", url.Values{
		"form-name":    {"Grace"},
		"contact-type": {"enquiry"},
		"website":      {"no"},
		"form-message": {"short"},
		"budget":       {"small"},
		"terms":        {"on"},
	})

	assert.Equal(t, "Grace", dom.FirstByName(doc, "form-name").Value())
	value, _ := dom.CheckedValue(doc, "contact-type")
	assert.Equal(t, "enquiry", value)
	value, _ = dom.CheckedValue(doc, "website")
	assert.Equal(t, "no", value)
	assert.Equal(t, "short", dom.FirstByName(doc, "form-message").Value())
	assert.Equal(t, "small", dom.FirstByName(doc, "budget").Value())
	assert.True(t, dom.FirstByName(doc, "terms").Checked())
	assert.Equal(t, "Send", dom.FirstByName(doc, "send").Value())

	// other forms are untouched
	assert.Equal(t, "keep", dom.FirstByName(doc, "other-name").Value())

	doc.Fill("#main-form", url.Values{})
	assert.Equal(t, "", dom.FirstByName(doc, "form-name").Value())
	_, ok := dom.CheckedValue(doc, "contact-type")
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	t.Parallel()
	doc := parse(t)

	dom.FirstByName(doc, "form-name").AddClass("invalid")
	out, err := doc.HTML()
	require.NoError(t, err)
	assert.Contains(t, out, `class="invalid"`)
	assert.Contains(t, out, `id="single-form"`)

	el, ok := dom.ByID(doc, "single-form").(*dom.HTMLElement)
	require.True(t, ok)
	outer, err := el.OuterHTML()
	require.NoError(t, err)
	assert.Equal(t, `<form id="single-form"><input name="other-name" value="keep"/></form>`, outer)
}
