package deepcopy

import "github.com/roach88/modelir/internal/ast"

// Handlers copies every kind by duplicating the node's own attributes and
// copying each child through Copier. Embed it to override single kinds.
type Handlers struct {
	Copier ast.Copier
}

var _ ast.Handler[ast.Node] = Handlers{}

func (h Handlers) VisitModulesFile(e *ast.ModulesFile) (ast.Node, error)               { return e.CopyWith(h.Copier) }
func (h Handlers) VisitPropertiesFile(e *ast.PropertiesFile) (ast.Node, error)         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitProperty(e *ast.Property) (ast.Node, error)                     { return e.CopyWith(h.Copier) }
func (h Handlers) VisitFormulaList(e *ast.FormulaList) (ast.Node, error)               { return e.CopyWith(h.Copier) }
func (h Handlers) VisitLabelList(e *ast.LabelList) (ast.Node, error)                   { return e.CopyWith(h.Copier) }
func (h Handlers) VisitConstantList(e *ast.ConstantList) (ast.Node, error)             { return e.CopyWith(h.Copier) }
func (h Handlers) VisitDeclaration(e *ast.Declaration) (ast.Node, error)               { return e.CopyWith(h.Copier) }
func (h Handlers) VisitDeclInt(e *ast.DeclInt) (ast.Node, error)                       { return e.CopyWith(h.Copier) }
func (h Handlers) VisitDeclBool(e *ast.DeclBool) (ast.Node, error)                     { return e.CopyWith(h.Copier) }
func (h Handlers) VisitDeclArray(e *ast.DeclArray) (ast.Node, error)                   { return e.CopyWith(h.Copier) }
func (h Handlers) VisitDeclClock(e *ast.DeclClock) (ast.Node, error)                   { return e.CopyWith(h.Copier) }
func (h Handlers) VisitDeclIntUnbounded(e *ast.DeclIntUnbounded) (ast.Node, error)     { return e.CopyWith(h.Copier) }
func (h Handlers) VisitModule(e *ast.Module) (ast.Node, error)                         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitCommand(e *ast.Command) (ast.Node, error)                       { return e.CopyWith(h.Copier) }
func (h Handlers) VisitUpdates(e *ast.Updates) (ast.Node, error)                       { return e.CopyWith(h.Copier) }
func (h Handlers) VisitUpdate(e *ast.Update) (ast.Node, error)                         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitUpdateElement(e *ast.UpdateElement) (ast.Node, error)           { return e.CopyWith(h.Copier) }
func (h Handlers) VisitRenamedModule(e *ast.RenamedModule) (ast.Node, error)           { return e.CopyWith(h.Copier) }
func (h Handlers) VisitRewardStruct(e *ast.RewardStruct) (ast.Node, error)             { return e.CopyWith(h.Copier) }
func (h Handlers) VisitRewardStructItem(e *ast.RewardStructItem) (ast.Node, error)     { return e.CopyWith(h.Copier) }
func (h Handlers) VisitObservableVars(e *ast.ObservableVars) (ast.Node, error)         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitObservable(e *ast.Observable) (ast.Node, error)                 { return e.CopyWith(h.Copier) }
func (h Handlers) VisitSystemInterleaved(e *ast.SystemInterleaved) (ast.Node, error)   { return e.CopyWith(h.Copier) }
func (h Handlers) VisitSystemFullParallel(e *ast.SystemFullParallel) (ast.Node, error) { return e.CopyWith(h.Copier) }
func (h Handlers) VisitSystemParallel(e *ast.SystemParallel) (ast.Node, error)         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitSystemHide(e *ast.SystemHide) (ast.Node, error)                 { return e.CopyWith(h.Copier) }
func (h Handlers) VisitSystemRename(e *ast.SystemRename) (ast.Node, error)             { return e.CopyWith(h.Copier) }
func (h Handlers) VisitSystemModule(e *ast.SystemModule) (ast.Node, error)             { return e.CopyWith(h.Copier) }
func (h Handlers) VisitSystemBrackets(e *ast.SystemBrackets) (ast.Node, error)         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitSystemReference(e *ast.SystemReference) (ast.Node, error)       { return e.CopyWith(h.Copier) }
func (h Handlers) VisitTemporal(e *ast.Temporal) (ast.Node, error)                     { return e.CopyWith(h.Copier) }
func (h Handlers) VisitITE(e *ast.ITE) (ast.Node, error)                               { return e.CopyWith(h.Copier) }
func (h Handlers) VisitBinaryOp(e *ast.BinaryOp) (ast.Node, error)                     { return e.CopyWith(h.Copier) }
func (h Handlers) VisitUnaryOp(e *ast.UnaryOp) (ast.Node, error)                       { return e.CopyWith(h.Copier) }
func (h Handlers) VisitFunc(e *ast.Func) (ast.Node, error)                             { return e.CopyWith(h.Copier) }
func (h Handlers) VisitIdent(e *ast.Ident) (ast.Node, error)                           { return e.CopyWith(h.Copier) }
func (h Handlers) VisitLiteral(e *ast.Literal) (ast.Node, error)                       { return e.CopyWith(h.Copier) }
func (h Handlers) VisitConstantRef(e *ast.ConstantRef) (ast.Node, error)               { return e.CopyWith(h.Copier) }
func (h Handlers) VisitFormulaRef(e *ast.FormulaRef) (ast.Node, error)                 { return e.CopyWith(h.Copier) }
func (h Handlers) VisitVar(e *ast.Var) (ast.Node, error)                               { return e.CopyWith(h.Copier) }
func (h Handlers) VisitInterval(e *ast.Interval) (ast.Node, error)                     { return e.CopyWith(h.Copier) }
func (h Handlers) VisitProb(e *ast.Prob) (ast.Node, error)                             { return e.CopyWith(h.Copier) }
func (h Handlers) VisitReward(e *ast.Reward) (ast.Node, error)                         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitSteadyState(e *ast.SteadyState) (ast.Node, error)               { return e.CopyWith(h.Copier) }
func (h Handlers) VisitExists(e *ast.Exists) (ast.Node, error)                         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitForAll(e *ast.ForAll) (ast.Node, error)                         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitStrategy(e *ast.Strategy) (ast.Node, error)                     { return e.CopyWith(h.Copier) }
func (h Handlers) VisitLabelRef(e *ast.LabelRef) (ast.Node, error)                     { return e.CopyWith(h.Copier) }
func (h Handlers) VisitObsRef(e *ast.ObsRef) (ast.Node, error)                         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitPropRef(e *ast.PropRef) (ast.Node, error)                       { return e.CopyWith(h.Copier) }
func (h Handlers) VisitFilterExpr(e *ast.FilterExpr) (ast.Node, error)                 { return e.CopyWith(h.Copier) }
func (h Handlers) VisitFilter(e *ast.Filter) (ast.Node, error)                         { return e.CopyWith(h.Copier) }
func (h Handlers) VisitForLoop(e *ast.ForLoop) (ast.Node, error)                       { return e.CopyWith(h.Copier) }
