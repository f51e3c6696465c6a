// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect loads camera documents exported by the photogrammetry
// tool and converts their camera entries into CameraRecords.
//
// A bad entry never aborts collection. Each entry produces an EntryResult;
// failures and warnings are gathered as Issues and reported by the caller
// once the whole document has been walked.
package collect

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/camera-export/internal/logger"
	"github.com/pdiddy/camera-export/internal/transform"
	"github.com/pdiddy/camera-export/pkg/types"
)

const (
	cameraTag    = "camera"
	transformTag = "transform"

	attrID      = "id"
	attrLabel   = "label"
	attrEnabled = "enabled"

	labelPrefix = "Camera_"
)

var (
	// ErrInputNotFound is returned by Load when the input path does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrMalformedDocument is returned when the input cannot be parsed as
	// an XML document at all.
	ErrMalformedDocument = errors.New("malformed document")

	errMissingID = errors.New("missing id attribute")
)

// Load reads and parses the document at path. The file is fully read and
// closed before Load returns.
func Load(path string) (*etree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads a document from r. Input that is not well-formed XML, or that
// has no root element, yields ErrMalformedDocument.
func Parse(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.ValidateInput = true
	doc.ReadSettings.PreserveDuplicateAttrs = true
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	if err := checkWellFormed(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return doc, nil
}

// checkWellFormed rejects what the decoder lets through: text outside the
// root element and repeated attributes on one element.
func checkWellFormed(doc *etree.Document) error {
	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return fmt.Errorf("text outside the root element: %q", strings.TrimSpace(cd.Data))
		}
	}

	var check func(e *etree.Element) error
	check = func(e *etree.Element) error {
		seen := make(map[string]bool, len(e.Attr))
		for _, a := range e.Attr {
			key := a.FullKey()
			if seen[key] {
				return fmt.Errorf("duplicate attribute %q on <%s>", key, e.FullTag())
			}
			seen[key] = true
		}
		for _, child := range e.ChildElements() {
			if err := check(child); err != nil {
				return err
			}
		}
		return nil
	}
	return check(doc.Root())
}

// isPlain reports whether e is an un-namespaced element named tag.
func isPlain(e *etree.Element, tag string) bool {
	return e.Tag == tag && e.Space == "" && e.NamespaceURI() == ""
}

// attr returns the un-namespaced attribute key of e, or nil.
func attr(e *etree.Element, key string) *etree.Attr {
	for i := range e.Attr {
		if e.Attr[i].Space == "" && e.Attr[i].Key == key {
			return &e.Attr[i]
		}
	}
	return nil
}

// transformElem returns the first un-namespaced transform child of e.
func transformElem(e *etree.Element) *etree.Element {
	for _, child := range e.ChildElements() {
		if isPlain(child, transformTag) {
			return child
		}
	}
	return nil
}

// IssueKind classifies a problem found in a single camera entry.
type IssueKind string

const (
	// IssueMissingTransform marks an entry without a transform child. It is
	// a warning, not an error.
	IssueMissingTransform IssueKind = "missing-transform"

	// IssueInvalid marks an entry whose id or transform could not be converted.
	IssueInvalid IssueKind = "invalid"
)

// Issue describes why one camera entry was skipped.
type Issue struct {
	// CameraID is the raw id attribute, empty when the attribute is absent.
	CameraID string
	Kind     IssueKind
	Err      error
}

func (i Issue) String() string {
	id := i.CameraID
	if id == "" {
		id = "<no id>"
	}
	if i.Kind == IssueMissingTransform {
		return fmt.Sprintf("Warning: Camera %s has no transform, skipping", id)
	}
	return fmt.Sprintf("Error parsing camera %s: %v", id, i.Err)
}

// EntryResult is the outcome of converting one camera element. Exactly one
// of Disabled, Issue != nil, or a valid Record applies.
type EntryResult struct {
	Record   types.CameraRecord
	Issue    *Issue
	Disabled bool
}

// OK reports whether the entry produced a record.
func (e EntryResult) OK() bool {
	return !e.Disabled && e.Issue == nil
}

// Convert turns a single camera element into a record.
func Convert(elem *etree.Element) EntryResult {
	if enabled := attr(elem, attrEnabled); enabled != nil && enabled.Value == "false" {
		return EntryResult{Disabled: true}
	}

	idAttr := attr(elem, attrID)
	rawID := ""
	if idAttr != nil {
		rawID = idAttr.Value
	}
	label := labelPrefix + rawID
	if la := attr(elem, attrLabel); la != nil {
		label = la.Value
	}

	te := transformElem(elem)
	if te == nil {
		return EntryResult{Issue: &Issue{CameraID: rawID, Kind: IssueMissingTransform}}
	}

	r, t, err := transform.Parse(te.Text())
	if err != nil {
		return EntryResult{Issue: &Issue{CameraID: rawID, Kind: IssueInvalid, Err: err}}
	}
	center := transform.Center(r, t)

	if idAttr == nil {
		return EntryResult{Issue: &Issue{Kind: IssueInvalid, Err: errMissingID}}
	}
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return EntryResult{Issue: &Issue{
			CameraID: rawID,
			Kind:     IssueInvalid,
			Err:      fmt.Errorf("invalid camera id %q: %w", rawID, err),
		}}
	}

	return EntryResult{Record: types.CameraRecord{
		ID:          id,
		Label:       label,
		Rotation:    r,
		Translation: t,
		Center:      center,
		Matrix:      transform.Homogeneous(r, t),
	}}
}

// Result holds the outcome of walking a whole document.
type Result struct {
	// Records are the converted cameras in document order.
	Records []types.CameraRecord

	// Issues lists skipped entries in document order.
	Issues []Issue

	// Disabled counts entries skipped because enabled="false".
	Disabled int
}

// Converted returns the number of cameras successfully converted.
func (r Result) Converted() int {
	return len(r.Records)
}

// Warnings returns the number of entries skipped for a missing transform.
func (r Result) Warnings() int {
	n := 0
	for _, i := range r.Issues {
		if i.Kind == IssueMissingTransform {
			n++
		}
	}
	return n
}

// Failed returns the number of entries that could not be converted.
func (r Result) Failed() int {
	return len(r.Issues) - r.Warnings()
}

// PrintIssues writes one line per issue to w.
func (r Result) PrintIssues(w io.Writer) {
	for _, i := range r.Issues {
		fmt.Fprintln(w, i.String())
	}
}

// Cameras converts every camera element below the document root, at any
// depth, in document order. Duplicate ids are kept as they are.
func Cameras(doc *etree.Document) Result {
	var res Result
	root := doc.Root()
	if root == nil {
		return res
	}

	for _, elem := range findCameras(root) {
		entry := Convert(elem)
		switch {
		case entry.Disabled:
			res.Disabled++
			logger.Debug("camera %s disabled, skipping", elem.SelectAttrValue(attrID, "?"))
		case entry.Issue != nil:
			res.Issues = append(res.Issues, *entry.Issue)
			logger.Warn("camera %q skipped: %s", entry.Issue.CameraID, entry.Issue.Kind)
		default:
			res.Records = append(res.Records, entry.Record)
			logger.Debug("camera %d (%s) center %v", entry.Record.ID, entry.Record.Label, entry.Record.Center)
		}
	}
	return res
}

// findCameras returns the camera elements strictly below root in document
// order.
func findCameras(root *etree.Element) []*etree.Element {
	var found []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if isPlain(child, cameraTag) {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(root)
	return found
}
