package dsl

// Object returns a field spec that delegates validation of a nested JSON
// object to an inner document. Object fields carry no validators or filters
// of their own; attach those to the inner document's fields.
func Object(doc *Schema) *Spec {
	return &Spec{kind: kindObject, doc: doc}
}

// List returns a field spec validating a JSON array by applying elem to every
// entry. Use MinEntries/MaxEntries to bound the entry count.
func List(elem *Spec) *Spec {
	return &Spec{kind: kindList, elem: elem}
}
