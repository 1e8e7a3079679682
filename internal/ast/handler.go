package ast

// Handler supplies exactly one computation per node kind.
//
// The method set mirrors Kind. Because Go checks interface satisfaction at
// compile time, adding a kind here forces every concrete traversal to grow a
// matching method before the module builds again.
type Handler[R any] interface {
	VisitModulesFile(*ModulesFile) (R, error)
	VisitPropertiesFile(*PropertiesFile) (R, error)
	VisitProperty(*Property) (R, error)
	VisitFormulaList(*FormulaList) (R, error)
	VisitLabelList(*LabelList) (R, error)
	VisitConstantList(*ConstantList) (R, error)
	VisitDeclaration(*Declaration) (R, error)
	VisitDeclInt(*DeclInt) (R, error)
	VisitDeclBool(*DeclBool) (R, error)
	VisitDeclArray(*DeclArray) (R, error)
	VisitDeclClock(*DeclClock) (R, error)
	VisitDeclIntUnbounded(*DeclIntUnbounded) (R, error)
	VisitModule(*Module) (R, error)
	VisitCommand(*Command) (R, error)
	VisitUpdates(*Updates) (R, error)
	VisitUpdate(*Update) (R, error)
	VisitUpdateElement(*UpdateElement) (R, error)
	VisitRenamedModule(*RenamedModule) (R, error)
	VisitRewardStruct(*RewardStruct) (R, error)
	VisitRewardStructItem(*RewardStructItem) (R, error)
	VisitObservableVars(*ObservableVars) (R, error)
	VisitObservable(*Observable) (R, error)
	VisitSystemInterleaved(*SystemInterleaved) (R, error)
	VisitSystemFullParallel(*SystemFullParallel) (R, error)
	VisitSystemParallel(*SystemParallel) (R, error)
	VisitSystemHide(*SystemHide) (R, error)
	VisitSystemRename(*SystemRename) (R, error)
	VisitSystemModule(*SystemModule) (R, error)
	VisitSystemBrackets(*SystemBrackets) (R, error)
	VisitSystemReference(*SystemReference) (R, error)
	VisitTemporal(*Temporal) (R, error)
	VisitITE(*ITE) (R, error)
	VisitBinaryOp(*BinaryOp) (R, error)
	VisitUnaryOp(*UnaryOp) (R, error)
	VisitFunc(*Func) (R, error)
	VisitIdent(*Ident) (R, error)
	VisitLiteral(*Literal) (R, error)
	VisitConstantRef(*ConstantRef) (R, error)
	VisitFormulaRef(*FormulaRef) (R, error)
	VisitVar(*Var) (R, error)
	VisitInterval(*Interval) (R, error)
	VisitProb(*Prob) (R, error)
	VisitReward(*Reward) (R, error)
	VisitSteadyState(*SteadyState) (R, error)
	VisitExists(*Exists) (R, error)
	VisitForAll(*ForAll) (R, error)
	VisitStrategy(*Strategy) (R, error)
	VisitLabelRef(*LabelRef) (R, error)
	VisitObsRef(*ObsRef) (R, error)
	VisitPropRef(*PropRef) (R, error)
	VisitFilterExpr(*FilterExpr) (R, error)
	VisitFilter(*Filter) (R, error)
	VisitForLoop(*ForLoop) (R, error)
}

// Dispatch calls the method of h that matches the dynamic kind of n.
// A nil node is a caller error and reported as INVALID_NODE.
func Dispatch[R any](n Node, h Handler[R]) (R, error) {
	switch e := n.(type) {
	case *ModulesFile:
		return h.VisitModulesFile(e)
	case *PropertiesFile:
		return h.VisitPropertiesFile(e)
	case *Property:
		return h.VisitProperty(e)
	case *FormulaList:
		return h.VisitFormulaList(e)
	case *LabelList:
		return h.VisitLabelList(e)
	case *ConstantList:
		return h.VisitConstantList(e)
	case *Declaration:
		return h.VisitDeclaration(e)
	case *DeclInt:
		return h.VisitDeclInt(e)
	case *DeclBool:
		return h.VisitDeclBool(e)
	case *DeclArray:
		return h.VisitDeclArray(e)
	case *DeclClock:
		return h.VisitDeclClock(e)
	case *DeclIntUnbounded:
		return h.VisitDeclIntUnbounded(e)
	case *Module:
		return h.VisitModule(e)
	case *Command:
		return h.VisitCommand(e)
	case *Updates:
		return h.VisitUpdates(e)
	case *Update:
		return h.VisitUpdate(e)
	case *UpdateElement:
		return h.VisitUpdateElement(e)
	case *RenamedModule:
		return h.VisitRenamedModule(e)
	case *RewardStruct:
		return h.VisitRewardStruct(e)
	case *RewardStructItem:
		return h.VisitRewardStructItem(e)
	case *ObservableVars:
		return h.VisitObservableVars(e)
	case *Observable:
		return h.VisitObservable(e)
	case *SystemInterleaved:
		return h.VisitSystemInterleaved(e)
	case *SystemFullParallel:
		return h.VisitSystemFullParallel(e)
	case *SystemParallel:
		return h.VisitSystemParallel(e)
	case *SystemHide:
		return h.VisitSystemHide(e)
	case *SystemRename:
		return h.VisitSystemRename(e)
	case *SystemModule:
		return h.VisitSystemModule(e)
	case *SystemBrackets:
		return h.VisitSystemBrackets(e)
	case *SystemReference:
		return h.VisitSystemReference(e)
	case *Temporal:
		return h.VisitTemporal(e)
	case *ITE:
		return h.VisitITE(e)
	case *BinaryOp:
		return h.VisitBinaryOp(e)
	case *UnaryOp:
		return h.VisitUnaryOp(e)
	case *Func:
		return h.VisitFunc(e)
	case *Ident:
		return h.VisitIdent(e)
	case *Literal:
		return h.VisitLiteral(e)
	case *ConstantRef:
		return h.VisitConstantRef(e)
	case *FormulaRef:
		return h.VisitFormulaRef(e)
	case *Var:
		return h.VisitVar(e)
	case *Interval:
		return h.VisitInterval(e)
	case *Prob:
		return h.VisitProb(e)
	case *Reward:
		return h.VisitReward(e)
	case *SteadyState:
		return h.VisitSteadyState(e)
	case *Exists:
		return h.VisitExists(e)
	case *ForAll:
		return h.VisitForAll(e)
	case *Strategy:
		return h.VisitStrategy(e)
	case *LabelRef:
		return h.VisitLabelRef(e)
	case *ObsRef:
		return h.VisitObsRef(e)
	case *PropRef:
		return h.VisitPropRef(e)
	case *FilterExpr:
		return h.VisitFilterExpr(e)
	case *Filter:
		return h.VisitFilter(e)
	case *ForLoop:
		return h.VisitForLoop(e)
	}
	var zero R
	if IsNil(n) {
		return zero, Errorf(CodeInvalidNode, Position{}, "cannot dispatch nil node")
	}
	return zero, Errorf(CodeInvalidNode, n.Position(), "unknown node kind %T", n)
}
