package store

import "errors"

// 业务前置条件不满足时返回的哨兵错误。
// 前端原版对这些情况是静默 no-op，这里改成显式返回，由 HTTP 层映射错误码；
// 状态不变这一点与原版一致。
var (
	ErrNoSession       = errors.New("store: no active session")
	ErrNotFarmer       = errors.New("store: current user is not a farmer")
	ErrEmptyCart       = errors.New("store: cart is empty")
	ErrProductNotFound = errors.New("store: product not found")
	ErrInvalidQuantity = errors.New("store: quantity must be positive")
)
