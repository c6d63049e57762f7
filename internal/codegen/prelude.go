package codegen

// prelude is prepended to every generated module: the Record shim
// (attribute-accessed, iterable as key/value pairs), the built-in
// Option/Result/Ordering constructors registered by
// internal/typechecker's registerBuiltinConstructors (emitted in the
// same one-class-per-constructor-plus-Union-alias shape emitTypeDecl
// uses for user-defined sum types, spec.md 4.5 scenario 5), and the
// __with_handler/__effect_perform runtime pair emitHandle/emitExpr's
// PerformExpr case call into (spec.md 4.5's "standard library shim").
// None collides with the host's own None keyword and is renamed via
// renameIdent, same as any user constructor named None would be;
// LT/EQ/GT and the rest aren't reserved words and pass through
// unchanged.
const prelude = `from typing import Union

class Record:
    def __init__(self, fields):
        self.__dict__.update(fields)
    def __iter__(self):
        return iter(self.__dict__.items())
    def __eq__(self, other):
        return isinstance(other, Record) and self.__dict__ == other.__dict__
    def __repr__(self):
        return "Record(" + repr(self.__dict__) + ")"

class Some:
    def __init__(self, a0):
        self._field0 = a0

class _None_:
    pass
_None_ = _None_()
Option = Union[Some, _None_]

class Ok:
    def __init__(self, a0):
        self._field0 = a0

class Error:
    def __init__(self, a0):
        self._field0 = a0

Result = Union[Ok, Error]

class LT:
    pass
LT = LT()

class EQ:
    pass
EQ = EQ()

class GT:
    pass
GT = GT()

Ordering = Union[LT, EQ, GT]

__handler_stack = []

def __with_handler(handlers, thunk):
    __handler_stack.append(handlers)
    try:
        return thunk()
    finally:
        __handler_stack.pop()

def __effect_perform(effect, operation, *args):
    for handlers in reversed(__handler_stack):
        if operation in handlers:
            return handlers[operation](*args)
    raise RuntimeError("unhandled effect: " + effect + "." + operation)
`
