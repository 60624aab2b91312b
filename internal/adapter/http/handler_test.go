package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	k8sadapter "github.com/mohammad8186/Kubernetes-as-a-Service/internal/adapter/kubernetes"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/adapter/repository"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/config"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/domain"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/port"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/service"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	"k8s.io/utils/ptr"
)

const api1Body = `{
	"AppName": "api1", "Replicas": 2, "ImageAddress": "repo/img", "ImageTag": "v1",
	"DomainAddress": "api1.example.com", "ServicePort": 8080,
	"Resources": {"CPU": "100m", "RAM": "128Mi"},
	"Envs": [{"Key": "MODE", "Value": "prod", "IsSecret": false}, {"Key": "TOKEN", "Value": "abc", "IsSecret": true}]
}`

type testServer struct {
	client  *fake.Clientset
	deployH *DeployHandler
	statusH *StatusHandler
	handler http.Handler
}

func newTestServer(t *testing.T, withHistory bool, objects ...runtime.Object) *testServer {
	t.Helper()
	client := fake.NewSimpleClientset(objects...)
	platform := k8sadapter.NewKubePlatform(client, "default", 0)

	var records port.RecordRepository
	if withHistory {
		db, err := repository.OpenDB(filepath.Join(t.TempDir(), "kaas.db"))
		if err != nil {
			t.Fatalf("open db: %v", err)
		}
		records = repository.NewRecordRepo(db)
	}

	pgConf := filepath.Join(t.TempDir(), "postgresql.conf")
	if err := os.WriteFile(pgConf, []byte("shared_buffers = 128MB\nmax_connections = 100\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	deploySvc := service.NewDeployService(service.NewOrchestrator(platform), records, service.DeployConfig{
		Namespace:        "default",
		Profile:          config.DefaultDatastoreProfile(),
		PostgresConfPath: pgConf,
	})
	statusSvc := service.NewStatusService(platform, config.DefaultExcludedWorkloads, 2)
	s := &testServer{
		client:  client,
		deployH: NewDeployHandler(deploySvc),
		statusH: NewStatusHandler(statusSvc),
	}
	s.handler = NewRouter(s.deployH, s.statusH, "")
	return s
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestDeploy_Success(t *testing.T) {
	s := newTestServer(t, true)
	rec := s.do(http.MethodPost, "/deploy", api1Body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody[messageBody](t, rec); got.Message != "Deployment initiated" {
		t.Errorf("message = %q", got.Message)
	}

	ctx := context.Background()
	if _, err := s.client.CoreV1().Secrets("default").Get(ctx, "api1-secret", metav1.GetOptions{}); err != nil {
		t.Errorf("secret missing: %v", err)
	}
	if _, err := s.client.NetworkingV1().Ingresses("default").Get(ctx, "api1", metav1.GetOptions{}); err != nil {
		t.Errorf("ingress missing: %v", err)
	}

	rec = s.do(http.MethodGet, "/deployments?app=api1", "")
	records := decodeBody[[]domain.DeploymentRecord](t, rec)
	if len(records) != 1 || records[0].Outcome != domain.OutcomeSubmitted {
		t.Errorf("records = %+v", records)
	}
}

func TestDeploy_Conflict(t *testing.T) {
	existing := &corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: "api1", Namespace: "default"}}
	s := newTestServer(t, false, existing)

	rec := s.do(http.MethodPost, "/deploy", api1Body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decodeBody[errorBody](t, rec); got.Error == "" {
		t.Error("expected error message")
	}
}

func TestDeploy_BadRequest(t *testing.T) {
	s := newTestServer(t, false)
	tests := map[string]string{
		"malformed json": `{"AppName": `,
		"invalid name":   `{"AppName": "Bad_Name", "ImageAddress": "x", "ImageTag": "1", "ServicePort": 80}`,
		"missing port":   `{"AppName": "api1", "ImageAddress": "x", "ImageTag": "1"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/deploy", body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestDeploy_PlatformErrorIs500(t *testing.T) {
	s := newTestServer(t, false)
	s.client.PrependReactor("create", "deployments", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewForbidden(schema.GroupResource{Group: "apps", Resource: "deployments"}, "api1", errors.New("denied"))
	})
	rec := s.do(http.MethodPost, "/deploy", api1Body)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestDeployPostgres(t *testing.T) {
	s := newTestServer(t, false)
	body := `{"AppName": "db1", "Resources": {"cpu": "250m", "memory": "256Mi"}, "External": true}`
	rec := s.do(http.MethodPost, "/deploy_postgres", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	svc, err := s.client.CoreV1().Services("default").Get(context.Background(), "db1", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("service missing: %v", err)
	}
	if svc.Spec.Type != corev1.ServiceTypeLoadBalancer {
		t.Errorf("service type = %q, want LoadBalancer", svc.Spec.Type)
	}
	secret, err := s.client.CoreV1().Secrets("default").Get(context.Background(), "db1-secret", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("secret missing: %v", err)
	}
	if len(secret.Data["password"]) != 16 {
		t.Errorf("password length = %d, want 16", len(secret.Data["password"]))
	}
}

func TestDeployPostgres_PropagatesPlatformStatus(t *testing.T) {
	s := newTestServer(t, false)
	s.client.PrependReactor("create", "statefulsets", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewForbidden(schema.GroupResource{Group: "apps", Resource: "statefulsets"}, "db1", errors.New("denied"))
	})
	body := `{"AppName": "db1", "Resources": {"cpu": "250m", "memory": "256Mi"}}`
	rec := s.do(http.MethodPost, "/deploy_postgres", body)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestStatusAll(t *testing.T) {
	web := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
		Spec:       appsv1.DeploymentSpec{Replicas: ptr.To(int32(2))},
	}
	ingressCtl := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "nginx-ingress-ingress-nginx-controller", Namespace: "default"},
	}
	podA := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web-a", Namespace: "default", Labels: map[string]string{"app": "web"}},
		Status: corev1.PodStatus{
			Phase:             corev1.PodRunning,
			ContainerStatuses: []corev1.ContainerStatus{{Ready: true}},
		},
	}
	podB := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "web-b", Namespace: "default", Labels: map[string]string{"app": "web"}},
		Status: corev1.PodStatus{
			Phase: corev1.PodPending,
			ContainerStatuses: []corev1.ContainerStatus{{State: corev1.ContainerState{
				Waiting: &corev1.ContainerStateWaiting{Reason: "ImagePullBackOff"},
			}}},
		},
	}
	s := newTestServer(t, false, web, ingressCtl, podA, podB)

	rec := s.do(http.MethodGet, "/status/all", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	got := decodeBody[[]domain.AppStatus](t, rec)
	if len(got) != 1 {
		t.Fatalf("statuses = %d, want 1", len(got))
	}
	if got[0].DeploymentName != "web" || got[0].Replicas != 2 || got[0].ReadyReplicas != 1 {
		t.Errorf("status = %+v", got[0])
	}
	phases := map[string]string{}
	for _, p := range got[0].PodStatuses {
		phases[p.Name] = p.Phase
	}
	if diff := cmp.Diff(map[string]string{"web-a": "Running", "web-b": "ImagePullBackOff"}, phases); diff != "" {
		t.Errorf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusAll_PlatformFailure(t *testing.T) {
	s := newTestServer(t, false)
	s.client.PrependReactor("list", "deployments", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewServiceUnavailable("apiserver down")
	})
	rec := s.do(http.MethodGet, "/status/all", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if got := decodeBody[errorBody](t, rec); got.Error == "" {
		t.Error("expected error message")
	}
}

func TestDeployments_HistoryDisabled(t *testing.T) {
	s := newTestServer(t, false)
	rec := s.do(http.MethodGet, "/deployments", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, false)
	rec := s.do(http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
