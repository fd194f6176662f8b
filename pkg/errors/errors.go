package errors

import "errors"

// ErrImportInProgress 同一组织已有课表导入正在执行
var ErrImportInProgress = errors.New("该组织已有课表导入正在进行，请稍后再试")

// ErrLockNotHeld 释放锁时锁已过期或被其他持有者占用
var ErrLockNotHeld = errors.New("导入锁已失效")
