package guestview

import (
	"strconv"
	"strings"

	"github.com/bnema/guestview/internal/application/port"
)

// Recognized configuration properties.
const (
	AttrSrc               = "src"
	AttrAutosize          = "autosize"
	AttrMinWidth          = "minwidth"
	AttrMaxWidth          = "maxwidth"
	AttrMinHeight         = "minheight"
	AttrMaxHeight         = "maxheight"
	AttrPartition         = "partition"
	AttrUserAgent         = "useragent"
	AttrHTTPReferrer      = "httpreferrer"
	AttrPreload           = "preload"
	AttrAllowTransparency = "allowtransparency"
	AttrAllowPopups       = "allowpopups"
)

const attrTabIndex = "tabindex"

// AttributeKind tags the binding variant of a property.
type AttributeKind int

const (
	// KindString is a plain text passthrough.
	KindString AttributeKind = iota
	// KindBoolean is presence-based; the text value is ignored.
	KindBoolean
	// KindDimension is an integer size limit feeding autosize.
	KindDimension
	// KindURL is resolved against the document base and drives navigation.
	KindURL
)

// String returns a human-readable representation of the kind.
func (k AttributeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindDimension:
		return "dimension"
	case KindURL:
		return "url"
	default:
		return "unknown"
	}
}

type bindingSpec struct {
	kind AttributeKind
	// autosize bindings re-issue autosize negotiation on mutation.
	autosize bool
}

// bindingTable selects the variant of every built-in property.
var bindingTable = map[string]bindingSpec{
	AttrSrc:               {kind: KindURL},
	AttrAutosize:          {kind: KindBoolean, autosize: true},
	AttrMinWidth:          {kind: KindDimension, autosize: true},
	AttrMaxWidth:          {kind: KindDimension, autosize: true},
	AttrMinHeight:         {kind: KindDimension, autosize: true},
	AttrMaxHeight:         {kind: KindDimension, autosize: true},
	AttrPartition:         {kind: KindString},
	AttrUserAgent:         {kind: KindString},
	AttrHTTPReferrer:      {kind: KindString},
	AttrPreload:           {kind: KindString},
	AttrAllowTransparency: {kind: KindBoolean},
	AttrAllowPopups:       {kind: KindBoolean},
}

// KindOf reports the binding kind of a built-in property.
func KindOf(name string) (AttributeKind, bool) {
	spec, ok := bindingTable[name]
	return spec.kind, ok
}

// Attribute is the capability set every binding variant implements.
type Attribute interface {
	Name() string
	Kind() AttributeKind
	// Get returns the effective value: string for string and URL kinds,
	// bool for boolean, int for dimension.
	Get() any
	// Set writes the underlying property from its text form.
	Set(value string)
	// SetIgnoringMutation writes like Set without triggering HandleMutation.
	SetIgnoringMutation(value string)
	// HandleMutation reacts to a change notified by the host framework.
	HandleMutation(oldValue, newValue string)

	ignoringMutation() bool
}

// attribute holds the state shared by all variants.
type attribute struct {
	name string
	// value is the fallback returned before the property is set.
	value          string
	ignoreMutation bool
	element        port.HostElement
	onMutation     func()
}

func newAttribute(name string, el port.HostElement, onMutation func()) attribute {
	initial, _ := el.GetAttribute(name)
	return attribute{name: name, value: initial, element: el, onMutation: onMutation}
}

func (a *attribute) Name() string { return a.name }

func (a *attribute) ignoringMutation() bool { return a.ignoreMutation }

func (a *attribute) raw() string {
	v, ok := a.element.GetAttribute(a.name)
	if !ok || v == "" {
		return a.value
	}
	return v
}

func (a *attribute) withMutationIgnored(write func()) {
	a.ignoreMutation = true
	defer func() { a.ignoreMutation = false }()
	write()
}

func (a *attribute) HandleMutation(_, _ string) {
	if a.onMutation != nil {
		a.onMutation()
	}
}

// StringAttribute is a plain text property.
type StringAttribute struct {
	attribute
}

func (a *StringAttribute) Kind() AttributeKind { return KindString }

func (a *StringAttribute) Get() any { return a.String() }

// String returns the property text, or the fallback when unset.
func (a *StringAttribute) String() string { return a.raw() }

func (a *StringAttribute) Set(value string) { a.element.SetAttribute(a.name, value) }

func (a *StringAttribute) SetIgnoringMutation(value string) {
	a.withMutationIgnored(func() { a.Set(value) })
}

// BooleanAttribute reports presence of the property.
type BooleanAttribute struct {
	attribute
}

func (a *BooleanAttribute) Kind() AttributeKind { return KindBoolean }

func (a *BooleanAttribute) Get() any { return a.Enabled() }

// Enabled reports whether the property is present, whatever its text.
func (a *BooleanAttribute) Enabled() bool { return a.element.HasAttribute(a.name) }

// Set treats empty text as false.
func (a *BooleanAttribute) Set(value string) { a.SetBool(value != "") }

// SetBool adds the property with empty content or removes it.
func (a *BooleanAttribute) SetBool(enabled bool) {
	if enabled {
		a.element.SetAttribute(a.name, "")
		return
	}
	a.element.RemoveAttribute(a.name)
}

func (a *BooleanAttribute) SetIgnoringMutation(value string) {
	a.withMutationIgnored(func() { a.Set(value) })
}

// DimensionAttribute is an integer size limit.
type DimensionAttribute struct {
	attribute
}

func (a *DimensionAttribute) Kind() AttributeKind { return KindDimension }

func (a *DimensionAttribute) Get() any { return a.Int() }

// Int parses the property, 0 when unset or not a number.
func (a *DimensionAttribute) Int() int {
	v, _ := a.element.GetAttribute(a.name)
	return parseLeadingInt(v)
}

func (a *DimensionAttribute) Set(value string) { a.element.SetAttribute(a.name, value) }

// SetInt writes n as the property text.
func (a *DimensionAttribute) SetInt(n int) { a.Set(strconv.Itoa(n)) }

func (a *DimensionAttribute) SetIgnoringMutation(value string) {
	a.withMutationIgnored(func() { a.Set(value) })
}

// URLAttribute is the navigation target. It watches its property through a
// dedicated observer instead of the generic mutation path.
type URLAttribute struct {
	attribute
	observer port.AttributeObserver
	onChange func(oldValue, newValue string)
}

func (a *URLAttribute) Kind() AttributeKind { return KindURL }

func (a *URLAttribute) Get() any { return a.URL() }

// URL returns the absolute navigation target, or the fallback when unset.
func (a *URLAttribute) URL() string {
	v, ok := a.element.GetAttribute(a.name)
	if !ok {
		return a.resolve(a.value)
	}
	return a.resolve(v)
}

func (a *URLAttribute) resolve(v string) string {
	if v == "" {
		return ""
	}
	return a.element.ResolveURL(v)
}

func (a *URLAttribute) Set(value string) { a.element.SetAttribute(a.name, value) }

// SetIgnoringMutation writes the property and drops the change records the
// write queued on the observer.
func (a *URLAttribute) SetIgnoringMutation(value string) {
	a.withMutationIgnored(func() {
		a.Set(value)
		if a.observer != nil {
			a.observer.TakeRecords()
		}
	})
}

// HandleMutation restores the previous target when the property is cleared,
// otherwise hands the change to the navigation-parse procedure.
func (a *URLAttribute) HandleMutation(oldValue, newValue string) {
	if newValue == "" && oldValue != "" {
		a.SetIgnoringMutation(oldValue)
		return
	}
	if a.onChange != nil {
		a.onChange(oldValue, newValue)
	}
}

// observe registers the dedicated observer. filter returns false for
// records that must not be treated as mutations.
func (a *URLAttribute) observe(filter func() bool) {
	a.observer = a.element.ObserveAttribute(a.name, func(oldRaw string) {
		if a.ignoreMutation || !filter() {
			return
		}
		oldValue := a.resolve(oldRaw)
		newValue := a.URL()
		if oldValue == newValue {
			return
		}
		a.HandleMutation(oldValue, newValue)
	})
}

func (a *URLAttribute) disconnect() {
	if a.observer != nil {
		a.observer.Disconnect()
		a.observer = nil
	}
}

// parseLeadingInt parses an optional sign and the leading digits of s,
// ignoring any trailing text ("120px" is 120). Returns 0 when no digit leads.
func parseLeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\f")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
