package services

// CheckUniqueFn lets tests stub the duplicate guard.
var CheckUniqueFn = &checkUniqueFn
