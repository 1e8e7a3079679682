package traverse

import "github.com/roach88/modelir/internal/ast"

// Uniform adapts one function to every method of ast.Handler. Embed it in a
// handler struct to supply a default for the kinds the struct does not
// handle itself.
type Uniform[R any] func(n ast.Node) (R, error)

var _ ast.Handler[int] = Uniform[int](nil)

func (f Uniform[R]) VisitModulesFile(e *ast.ModulesFile) (R, error)               { return f(e) }
func (f Uniform[R]) VisitPropertiesFile(e *ast.PropertiesFile) (R, error)         { return f(e) }
func (f Uniform[R]) VisitProperty(e *ast.Property) (R, error)                     { return f(e) }
func (f Uniform[R]) VisitFormulaList(e *ast.FormulaList) (R, error)               { return f(e) }
func (f Uniform[R]) VisitLabelList(e *ast.LabelList) (R, error)                   { return f(e) }
func (f Uniform[R]) VisitConstantList(e *ast.ConstantList) (R, error)             { return f(e) }
func (f Uniform[R]) VisitDeclaration(e *ast.Declaration) (R, error)               { return f(e) }
func (f Uniform[R]) VisitDeclInt(e *ast.DeclInt) (R, error)                       { return f(e) }
func (f Uniform[R]) VisitDeclBool(e *ast.DeclBool) (R, error)                     { return f(e) }
func (f Uniform[R]) VisitDeclArray(e *ast.DeclArray) (R, error)                   { return f(e) }
func (f Uniform[R]) VisitDeclClock(e *ast.DeclClock) (R, error)                   { return f(e) }
func (f Uniform[R]) VisitDeclIntUnbounded(e *ast.DeclIntUnbounded) (R, error)     { return f(e) }
func (f Uniform[R]) VisitModule(e *ast.Module) (R, error)                         { return f(e) }
func (f Uniform[R]) VisitCommand(e *ast.Command) (R, error)                       { return f(e) }
func (f Uniform[R]) VisitUpdates(e *ast.Updates) (R, error)                       { return f(e) }
func (f Uniform[R]) VisitUpdate(e *ast.Update) (R, error)                         { return f(e) }
func (f Uniform[R]) VisitUpdateElement(e *ast.UpdateElement) (R, error)           { return f(e) }
func (f Uniform[R]) VisitRenamedModule(e *ast.RenamedModule) (R, error)           { return f(e) }
func (f Uniform[R]) VisitRewardStruct(e *ast.RewardStruct) (R, error)             { return f(e) }
func (f Uniform[R]) VisitRewardStructItem(e *ast.RewardStructItem) (R, error)     { return f(e) }
func (f Uniform[R]) VisitObservableVars(e *ast.ObservableVars) (R, error)         { return f(e) }
func (f Uniform[R]) VisitObservable(e *ast.Observable) (R, error)                 { return f(e) }
func (f Uniform[R]) VisitSystemInterleaved(e *ast.SystemInterleaved) (R, error)   { return f(e) }
func (f Uniform[R]) VisitSystemFullParallel(e *ast.SystemFullParallel) (R, error) { return f(e) }
func (f Uniform[R]) VisitSystemParallel(e *ast.SystemParallel) (R, error)         { return f(e) }
func (f Uniform[R]) VisitSystemHide(e *ast.SystemHide) (R, error)                 { return f(e) }
func (f Uniform[R]) VisitSystemRename(e *ast.SystemRename) (R, error)             { return f(e) }
func (f Uniform[R]) VisitSystemModule(e *ast.SystemModule) (R, error)             { return f(e) }
func (f Uniform[R]) VisitSystemBrackets(e *ast.SystemBrackets) (R, error)         { return f(e) }
func (f Uniform[R]) VisitSystemReference(e *ast.SystemReference) (R, error)       { return f(e) }
func (f Uniform[R]) VisitTemporal(e *ast.Temporal) (R, error)                     { return f(e) }
func (f Uniform[R]) VisitITE(e *ast.ITE) (R, error)                               { return f(e) }
func (f Uniform[R]) VisitBinaryOp(e *ast.BinaryOp) (R, error)                     { return f(e) }
func (f Uniform[R]) VisitUnaryOp(e *ast.UnaryOp) (R, error)                       { return f(e) }
func (f Uniform[R]) VisitFunc(e *ast.Func) (R, error)                             { return f(e) }
func (f Uniform[R]) VisitIdent(e *ast.Ident) (R, error)                           { return f(e) }
func (f Uniform[R]) VisitLiteral(e *ast.Literal) (R, error)                       { return f(e) }
func (f Uniform[R]) VisitConstantRef(e *ast.ConstantRef) (R, error)               { return f(e) }
func (f Uniform[R]) VisitFormulaRef(e *ast.FormulaRef) (R, error)                 { return f(e) }
func (f Uniform[R]) VisitVar(e *ast.Var) (R, error)                               { return f(e) }
func (f Uniform[R]) VisitInterval(e *ast.Interval) (R, error)                     { return f(e) }
func (f Uniform[R]) VisitProb(e *ast.Prob) (R, error)                             { return f(e) }
func (f Uniform[R]) VisitReward(e *ast.Reward) (R, error)                         { return f(e) }
func (f Uniform[R]) VisitSteadyState(e *ast.SteadyState) (R, error)               { return f(e) }
func (f Uniform[R]) VisitExists(e *ast.Exists) (R, error)                         { return f(e) }
func (f Uniform[R]) VisitForAll(e *ast.ForAll) (R, error)                         { return f(e) }
func (f Uniform[R]) VisitStrategy(e *ast.Strategy) (R, error)                     { return f(e) }
func (f Uniform[R]) VisitLabelRef(e *ast.LabelRef) (R, error)                     { return f(e) }
func (f Uniform[R]) VisitObsRef(e *ast.ObsRef) (R, error)                         { return f(e) }
func (f Uniform[R]) VisitPropRef(e *ast.PropRef) (R, error)                       { return f(e) }
func (f Uniform[R]) VisitFilterExpr(e *ast.FilterExpr) (R, error)                 { return f(e) }
func (f Uniform[R]) VisitFilter(e *ast.Filter) (R, error)                         { return f(e) }
func (f Uniform[R]) VisitForLoop(e *ast.ForLoop) (R, error)                       { return f(e) }
