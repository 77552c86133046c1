// Package session 每用户会话状态存储
// 只有未完成注册的用户才有会话；注册完成或 /start 重置时清掉
package session

import (
	"context"
	"sync"
)

type Mode string

const (
	ModeRegistration Mode = "registration"
	ModeMain         Mode = "main"
)

type Step string

const (
	StepAskName           Step = "ask_name"
	StepAskKnowTargets    Step = "ask_know_targets"
	StepAskCaloriesTarget Step = "ask_calories_target"
	StepAskProteinTarget  Step = "ask_protein_target"
	StepAskWeight         Step = "ask_weight"
	StepAskHeight         Step = "ask_height"
	StepAskAge            Step = "ask_age"
	StepAskGoal           Step = "ask_goal"
)

// RegistrationData 注册过程中逐步累积的回答
// 手动路径填 targets，估算路径填体征，两者不混用
type RegistrationData struct {
	Name           string  `json:"name"`
	KnowsTargets   bool    `json:"knows_targets"`
	CaloriesTarget float64 `json:"calories_target"`
	ProteinTarget  float64 `json:"protein_target"`
	WeightKg       float64 `json:"weight_kg"`
	HeightCm       float64 `json:"height_cm"`
	AgeYears       int     `json:"age_years"`
	GoalRaw        string  `json:"goal_raw"`
}

// Session 一个用户的会话状态
type Session struct {
	UserID string           `json:"user_id"`
	Mode   Mode             `json:"mode"`
	Step   Step             `json:"step"`
	Data   RegistrationData `json:"data"`
}

// NewRegistrationSession 从 ask_name 开始的全新注册会话
func NewRegistrationSession(userID string) *Session {
	return &Session{
		UserID: userID,
		Mode:   ModeRegistration,
		Step:   StepAskName,
	}
}

// Store 会话存储
// Get 不存在时返回 (nil, nil)。Lock 返回该用户的解锁函数，
// 同一用户的消息处理必须在锁内做读-改-写，消除并发交错
type Store interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, userID string) error
	Lock(userID string) func()
}

// keyedMutex 按用户串行化，锁对象懒创建且不回收
// 用户量 = 锁数量，对一个聊天机器人来说可以接受
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
