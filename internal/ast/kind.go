package ast

// Kind enumerates the closed set of node kinds.
type Kind int

const (
	KindModulesFile Kind = iota
	KindPropertiesFile
	KindProperty
	KindFormulaList
	KindLabelList
	KindConstantList
	KindDeclaration
	KindDeclInt
	KindDeclBool
	KindDeclArray
	KindDeclClock
	KindDeclIntUnbounded
	KindModule
	KindCommand
	KindUpdates
	KindUpdate
	KindUpdateElement
	KindRenamedModule
	KindRewardStruct
	KindRewardStructItem
	KindObservableVars
	KindObservable
	KindSystemInterleaved
	KindSystemFullParallel
	KindSystemParallel
	KindSystemHide
	KindSystemRename
	KindSystemModule
	KindSystemBrackets
	KindSystemReference
	KindTemporal
	KindITE
	KindBinaryOp
	KindUnaryOp
	KindFunc
	KindIdent
	KindLiteral
	KindConstantRef
	KindFormulaRef
	KindVar
	KindInterval
	KindProb
	KindReward
	KindSteadyState
	KindExists
	KindForAll
	KindStrategy
	KindLabelRef
	KindObsRef
	KindPropRef
	KindFilterExpr
	KindFilter
	KindForLoop

	kindCount // number of kinds; keep last
)

var kindNames = [kindCount]string{
	KindModulesFile:        "ModulesFile",
	KindPropertiesFile:     "PropertiesFile",
	KindProperty:           "Property",
	KindFormulaList:        "FormulaList",
	KindLabelList:          "LabelList",
	KindConstantList:       "ConstantList",
	KindDeclaration:        "Declaration",
	KindDeclInt:            "DeclInt",
	KindDeclBool:           "DeclBool",
	KindDeclArray:          "DeclArray",
	KindDeclClock:          "DeclClock",
	KindDeclIntUnbounded:   "DeclIntUnbounded",
	KindModule:             "Module",
	KindCommand:            "Command",
	KindUpdates:            "Updates",
	KindUpdate:             "Update",
	KindUpdateElement:      "UpdateElement",
	KindRenamedModule:      "RenamedModule",
	KindRewardStruct:       "RewardStruct",
	KindRewardStructItem:   "RewardStructItem",
	KindObservableVars:     "ObservableVars",
	KindObservable:         "Observable",
	KindSystemInterleaved:  "SystemInterleaved",
	KindSystemFullParallel: "SystemFullParallel",
	KindSystemParallel:     "SystemParallel",
	KindSystemHide:         "SystemHide",
	KindSystemRename:       "SystemRename",
	KindSystemModule:       "SystemModule",
	KindSystemBrackets:     "SystemBrackets",
	KindSystemReference:    "SystemReference",
	KindTemporal:           "Temporal",
	KindITE:                "ITE",
	KindBinaryOp:           "BinaryOp",
	KindUnaryOp:            "UnaryOp",
	KindFunc:               "Func",
	KindIdent:              "Ident",
	KindLiteral:            "Literal",
	KindConstantRef:        "ConstantRef",
	KindFormulaRef:         "FormulaRef",
	KindVar:                "Var",
	KindInterval:           "Interval",
	KindProb:               "Prob",
	KindReward:             "Reward",
	KindSteadyState:        "SteadyState",
	KindExists:             "Exists",
	KindForAll:             "ForAll",
	KindStrategy:           "Strategy",
	KindLabelRef:           "LabelRef",
	KindObsRef:             "ObsRef",
	KindPropRef:            "PropRef",
	KindFilterExpr:         "FilterExpr",
	KindFilter:             "Filter",
	KindForLoop:            "ForLoop",
}

// String returns the kind's name, e.g. "BinaryOp".
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}
