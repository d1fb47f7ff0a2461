package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// Module 业务模块把自己的路由挂到公共分组（pub）或登录分组（priv）
type Module interface {
	Mount(pub, priv *gin.RouterGroup)
}

// 可选：实现该接口可控制挂载顺序（数值越小越先挂），不实现默认 100
type prioritizer interface{ Priority() int }

type Registry struct {
	mu   sync.Mutex
	mods []Module
}

func (r *Registry) Register(mods ...Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mods = append(r.mods, mods...)
}

func (r *Registry) MountAll(pub, priv *gin.RouterGroup) {
	r.mu.Lock()
	mods := append([]Module(nil), r.mods...)
	r.mu.Unlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(pub, priv)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
