package b

// Returns the name.
func Named() string { return "" } // want `Doc comment for b\.Named should begin with "Named"`

// Unchecked has no issues.
func Unchecked() {}

func Missing() {}
