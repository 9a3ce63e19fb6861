package language

// ExportDirective is the name of the directive that copies a resolved field
// value into the variable store for later selections in the same operation.
const ExportDirective = "export"

// ExportTarget reports the variable name an @export directive writes to.
// The "as" argument names an overwrite target and "into" names a list-append
// target; "as" wins when both are present. ok is false when d is not an
// @export directive or names no target with a string argument.
func ExportTarget(d *Directive) (name string, collect bool, ok bool) {
	if d == nil || d.Name != ExportDirective {
		return "", false, false
	}
	if v := stringArg(d, "as"); v != "" {
		return v, false, true
	}
	if v := stringArg(d, "into"); v != "" {
		return v, true, true
	}
	return "", false, false
}

// FindExport returns the @export directive in the list, or nil.
func FindExport(directives DirectiveList) *Directive {
	return directives.ForName(ExportDirective)
}

func stringArg(d *Directive, name string) string {
	for _, arg := range d.Arguments {
		if arg.Name != name || arg.Value == nil {
			continue
		}
		if arg.Value.Kind == StringValue || arg.Value.Kind == BlockValue {
			return arg.Value.Raw
		}
	}
	return ""
}
