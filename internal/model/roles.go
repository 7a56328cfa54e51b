package model

// roleTypeMap maps accessibility role strings to element types.
// Unmapped roles classify as TypeOther.
var roleTypeMap = map[string]ElementType{
	"AXButton":             TypeButton,
	"AXPopUpButton":        TypeButton,
	"AXMenuButton":         TypeButton,
	"AXMenuBarItem":        TypeButton,
	"AXDisclosureTriangle": TypeButton,
	"AXTextField":          TypeTextField,
	"AXTextArea":           TypeTextField,
	"AXSearchField":        TypeTextField,
	"AXComboBox":           TypeTextField,
	"AXLink":               TypeLink,
	"AXImage":              TypeImage,
	"AXGroup":              TypeGroup,
	"AXSplitGroup":         TypeGroup,
	"AXTabGroup":           TypeGroup,
	"AXToolbar":            TypeGroup,
	"AXSlider":             TypeSlider,
	"AXCheckBox":           TypeCheckbox,
	"AXRadioButton":        TypeCheckbox,
	"AXSwitch":             TypeCheckbox,
	"AXMenu":               TypeMenu,
	"AXMenuBar":            TypeMenu,
	"AXMenuItem":           TypeMenu,
}

// ClassifyRole converts an accessibility role string to an ElementType.
func ClassifyRole(role string) ElementType {
	if t, ok := roleTypeMap[role]; ok {
		return t
	}
	return TypeOther
}

// actionableRoles are roles that count as actionable even when the node
// declares no press action.
var actionableRoles = map[string]bool{
	"AXButton":      true,
	"AXPopUpButton": true,
	"AXMenuButton":  true,
	"AXMenuBarItem": true,
	"AXMenuItem":    true,
	"AXLink":        true,
	"AXTextField":   true,
	"AXTextArea":    true,
	"AXSearchField": true,
	"AXComboBox":    true,
	"AXCheckBox":    true,
	"AXRadioButton": true,
	"AXSwitch":      true,
	"AXSlider":      true,
}

// IsActionableRole reports whether the role is in the actionable allowlist.
func IsActionableRole(role string) bool {
	return actionableRoles[role]
}

// pressActions are action names equivalent to a press.
var pressActions = map[string]bool{
	"AXPress":   true,
	"press":     true,
	"AXPick":    true,
	"AXConfirm": true,
}

// IsPressAction reports whether the action name is a press equivalent.
func IsPressAction(action string) bool {
	return pressActions[action]
}
