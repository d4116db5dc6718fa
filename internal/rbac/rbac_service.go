package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"sige/internal/tenant"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Static role policies. Roles come from the JWT (usuario.tipo_usuario),
// so there is no per-user grouping to load.
var policies = [][]string{
	{tenant.RoleAdmin, "folha", "processar"},
	{tenant.RoleAdmin, "folha", "fechar"},
	{tenant.RoleAdmin, "funcionario", "salario"},
	{tenant.RoleAdmin, "ponto", "registrar"},
	{tenant.RoleAdmin, "kpi", "ler"},
	{tenant.RoleAdmin, "rdo", "criar"},
	{tenant.RoleAdmin, "financeiro", "movimentar"},
	{tenant.RoleEmployee, "ponto", "registrar"},
	{tenant.RoleEmployee, "kpi", "ler"},
	{tenant.RoleEmployee, "rdo", "criar"},
}

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: e}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enforcer.Enforce(role, resource, action)
}
