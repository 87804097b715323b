package auth

import (
	"fmt"

	"github.com/yeisme/docvault/pkg/apperr"
	"github.com/yeisme/docvault/pkg/internal/model"
)

// Action 授权动作类别，业务操作先映射到类别再查策略表.
type Action string

const (
	// ActionRead 读取文档内容、元数据、版本与审计记录.
	ActionRead Action = "read"
	// ActionWrite 上传文档、新增版本、修改元数据、恢复版本.
	ActionWrite Action = "write"
	// ActionDelete 删除文档.
	ActionDelete Action = "delete"
	// ActionStat 查看统计信息.
	ActionStat Action = "stat"
)

// policy 角色到允许动作的映射.
var policy = map[model.Role]map[Action]bool{
	model.RoleAdmin: {
		ActionRead:   true,
		ActionWrite:  true,
		ActionDelete: true,
		ActionStat:   true,
	},
	model.RoleEditor: {
		ActionRead:   true,
		ActionWrite:  true,
		ActionDelete: false,
		ActionStat:   true,
	},
	model.RoleViewer: {
		ActionRead:   true,
		ActionWrite:  false,
		ActionDelete: false,
		ActionStat:   true,
	},
}

// Allowed 判断角色是否允许执行动作.未知角色不允许任何动作.
func Allowed(role model.Role, action Action) bool {
	actions, ok := policy[role]
	if !ok {
		return false
	}

	return actions[action]
}

// Require 校验主体是否允许执行动作，不允许时返回授权错误.
func Require(p *Principal, action Action) error {
	if p == nil {
		return apperr.Authentication("missing principal")
	}

	if !Allowed(p.Role, action) {
		return apperr.Authorization(
			fmt.Sprintf("role %s is not allowed to %s", p.Role, action))
	}

	return nil
}
