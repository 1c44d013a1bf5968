// Package dom defines the document tree a form processor reads input state
// from and writes validity indicators to, together with an in-memory HTML
// implementation built on goquery.
//
// Lookups follow a fixed naming convention:
//
//   - inputs are found by their name attribute (ByName);
//   - the hint of field X has id "hint-X" (HintID);
//   - the container of a group field X has id "form-box-X" (GroupBoxID).
//
// HTMLDocument is mutable: AddClass, RemoveClass and SetDisplay change the
// parsed tree in place, and Render writes the current state back out.
// Fill copies submitted form values into a form so that validation sees what
// the user sent.
//
//	doc, err := dom.ParseString(page)
//	if err != nil {
//	    return err
//	}
//	doc.Fill("#main-form", r.PostForm)
//	for _, el := range dom.ByName(doc, "contact-type") {
//	    // ...
//	}
//
// An HTMLDocument is not safe for concurrent use. Parse one per request.
package dom
